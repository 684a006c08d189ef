package httpapi

type addSkillReq struct {
	Name string `json:"name"`
}

type skillsResp struct {
	Skills  []string `json:"skills"`
	Added   *bool    `json:"added,omitempty"`
	Removed *int     `json:"removed,omitempty"`
}

type setTokenReq struct {
	Token string `json:"token"`
}
