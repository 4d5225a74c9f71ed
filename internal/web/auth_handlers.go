package web

import (
	"log"
	"net/http"
)

type authPageData struct {
	Notice string
}

func (s *Server) RegisterPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "register.tmpl", authPageData{})
}

func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "login.tmpl", authPageData{})
}

// Register forwards the registration form. A success is a backend redirect;
// anything else surfaces the detail message on the form.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	password := r.FormValue("password")
	if len(password) < 3 {
		s.render(w, "register.tmpl", authPageData{Notice: "Password must be at least 3 characters"})
		return
	}

	result, err := s.api.Register(r.Context(),
		r.FormValue("username"), r.FormValue("email"), r.FormValue("phone"), password)
	if err != nil {
		log.Printf("Registration failed: %v", err)
		s.render(w, "register.tmpl", authPageData{Notice: errDetail(err, "Registration error")})
		return
	}
	s.finishAuth(w, r, result.Cookies, result.RedirectURL, "register.tmpl", "Registration error")
}

// Login forwards the credentials. The backend opens a session by setting the
// access token cookie on its redirect; we pass both through to the browser.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	result, err := s.api.Login(r.Context(), r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		log.Printf("Login failed: %v", err)
		s.render(w, "login.tmpl", authPageData{Notice: errDetail(err, "Authorization failed! Please try again.")})
		return
	}
	s.finishAuth(w, r, result.Cookies, result.RedirectURL, "login.tmpl", "Authorization failed! Please try again.")
}

func (s *Server) finishAuth(w http.ResponseWriter, r *http.Request, cookies []*http.Cookie, redirect, tmpl, failNotice string) {
	for _, cookie := range cookies {
		http.SetCookie(w, cookie)
	}
	if redirect != "" {
		http.Redirect(w, r, redirect, http.StatusSeeOther)
		return
	}
	// 2xx without a redirect means no session was opened.
	s.render(w, tmpl, authPageData{Notice: failNotice})
}
