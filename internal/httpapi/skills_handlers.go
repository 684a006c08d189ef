package httpapi

import (
	"net/http"
	"net/url"
	"strings"
)

type SkillsHandler struct {
	Dashboard Dashboard
}

func (h SkillsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, skillsResp{Skills: h.Dashboard.Skills()})
}

// Add accepts JSON from the page script and a plain form post without it.
func (h SkillsHandler) Add(w http.ResponseWriter, r *http.Request) {
	var name string
	form := strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
	if form {
		if err := r.ParseForm(); err != nil {
			WriteError(w, r, http.StatusBadRequest, codeBadRequest, "invalid form")
			return
		}
		name = r.PostForm.Get("name")
	} else {
		var req addSkillReq
		if err := decodeJSON(w, r, &req); err != nil {
			WriteError(w, r, http.StatusBadRequest, codeBadRequest, "invalid JSON: "+err.Error())
			return
		}
		name = req.Name
	}

	added := h.Dashboard.AddSkill(name)
	if form {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	writeJSON(w, skillsResp{Skills: h.Dashboard.Skills(), Added: &added})
}

// Remove takes the name from ?name= or from the path after /api/skills/.
func (h SkillsHandler) Remove(w http.ResponseWriter, r *http.Request) {
	name, ok := skillFromRequest(r)
	if !ok {
		WriteError(w, r, http.StatusBadRequest, codeMissingSkill, "missing skill name")
		return
	}
	removed := h.Dashboard.RemoveSkill(name)
	writeJSON(w, skillsResp{Skills: h.Dashboard.Skills(), Removed: &removed})
}

func skillFromRequest(r *http.Request) (string, bool) {
	if q := r.URL.Query(); q.Has("name") {
		return q.Get("name"), q.Get("name") != ""
	}
	raw := strings.TrimPrefix(r.URL.EscapedPath(), "/api/skills/")
	if raw == r.URL.EscapedPath() || raw == "" {
		return "", false
	}
	name, err := url.PathUnescape(raw)
	if err != nil || name == "" {
		return "", false
	}
	return name, true
}
