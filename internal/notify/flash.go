package notify

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
)

// CookieName is the cookie holding the one-shot notice.
const CookieName = "inv_flash"

// Flash persists a notice for the next page render.
type Flash struct {
	Secure bool
}

// Write stores notice in the flash cookie. Empty notices are ignored.
func (f Flash) Write(w http.ResponseWriter, notice Notice) {
	normalized, ok := normalize(notice)
	if !ok {
		return
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   f.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadAndClear returns the pending notice, if any, and expires the cookie.
// An undecodable cookie is cleared and reported as absent.
func (f Flash) ReadAndClear(w http.ResponseWriter, r *http.Request) (Notice, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Notice{}, false
	}
	f.clear(w)
	return decode(cookie.Value)
}

func (f Flash) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   f.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func decode(raw string) (Notice, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Notice{}, false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Notice{}, false
	}
	var notice Notice
	if err := json.Unmarshal(decoded, &notice); err != nil {
		return Notice{}, false
	}
	return normalize(notice)
}

func normalize(notice Notice) (Notice, bool) {
	if notice.IsZero() {
		return Notice{}, false
	}
	notice.Kind = Kind(strings.ToLower(strings.TrimSpace(string(notice.Kind))))
	switch notice.Kind {
	case KindSuccess, KindInfo, KindWarning, KindDanger:
	default:
		notice.Kind = KindInfo
	}
	return notice, true
}
