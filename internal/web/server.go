package web

import (
	"embed"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"parkfront/internal/auth"
	"parkfront/internal/backend"
	"parkfront/internal/session"
	"parkfront/internal/view"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Server is the frontend: it owns per-visitor view state, renders pages from
// it and performs all reservation-API calls on the visitor's behalf.
type Server struct {
	api      *backend.Client
	sessions *session.Store
	schemes  *view.SchemeResolver
	secret   string
	tmpl     *template.Template
}

func NewServer(api *backend.Client, sessions *session.Store, schemes *view.SchemeResolver, tokenSecret string) *Server {
	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"json": templateJSON,
	}).ParseFS(templateFS, "templates/*.tmpl"))
	return &Server{
		api:      api,
		sessions: sessions,
		schemes:  schemes,
		secret:   tokenSecret,
		tmpl:     tmpl,
	}
}

// Routes registers every page and UI action.
func (s *Server) Routes(r *mux.Router) {
	r.HandleFunc("/main_page", s.MainPage).Methods("GET")
	r.HandleFunc("/ui/location", s.SetLocation).Methods("POST")
	r.HandleFunc("/ui/times", s.SetTimes).Methods("POST")
	r.HandleFunc("/ui/spots/open", s.OpenSpotPicker).Methods("POST")
	r.HandleFunc("/ui/spots/prev", s.PrevFloor).Methods("POST")
	r.HandleFunc("/ui/spots/next", s.NextFloor).Methods("POST")
	r.HandleFunc("/ui/spots/select", s.SelectSpot).Methods("POST")
	r.HandleFunc("/ui/spots/confirm", s.ConfirmSpot).Methods("POST")
	r.HandleFunc("/ui/spots/close", s.CloseSpotPicker).Methods("POST")
	r.HandleFunc("/ui/modal/close", s.CloseModal).Methods("POST")
	r.HandleFunc("/book", s.SubmitBooking).Methods("POST")
	r.HandleFunc("/ui/booking/ack", s.AckBooking).Methods("POST")

	r.HandleFunc("/pay/{user_id:[0-9]+}", s.PaymentPage).Methods("GET")
	r.HandleFunc("/pay/{user_id:[0-9]+}/submit", s.SubmitPayment).Methods("POST")
	r.HandleFunc("/pay/{user_id:[0-9]+}/cancel", s.CancelPendingBooking).Methods("POST")
	r.HandleFunc("/waiting/{user_id:[0-9]+}", s.WaitingPage).Methods("GET")

	r.HandleFunc("/register", s.RegisterPage).Methods("GET")
	r.HandleFunc("/register", s.Register).Methods("POST")
	r.HandleFunc("/login", s.LoginPage).Methods("GET")
	r.HandleFunc("/login", s.Login).Methods("POST")

	r.HandleFunc("/user_acc/{user_id:[0-9]+}", s.AccountPage).Methods("GET")
	r.HandleFunc("/user_acc/{user_id:[0-9]+}/details", s.BookingDetails).Methods("POST")
	r.HandleFunc("/user_acc/{user_id:[0-9]+}/cancel", s.CancelBooking).Methods("POST")

	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware(s.secret))
	admin.HandleFunc("", s.AdminPage).Methods("GET")
	admin.HandleFunc("/ui/users/refresh", s.RefreshUsers).Methods("POST")
	admin.HandleFunc("/ui/users/{id:[0-9]+}/status", s.SetUserStatus).Methods("POST")
	admin.HandleFunc("/ui/users/{id:[0-9]+}/bookings", s.ShowUserBookings).Methods("POST")
	admin.HandleFunc("/ui/bookings/close", s.CloseBookings).Methods("POST")
	admin.HandleFunc("/ui/spots/select", s.AdminSelectLocation).Methods("POST")
	admin.HandleFunc("/ui/spots/floor", s.AdminSelectFloor).Methods("POST")
	admin.HandleFunc("/ui/spots/{id:[0-9]+}/price", s.UpdateSpotPrice).Methods("POST")
	admin.HandleFunc("/ui/spots/{id:[0-9]+}/reserve", s.ReserveSpot).Methods("POST")
	admin.HandleFunc("/ui/spots/{id:[0-9]+}/free", s.FreeSpot).Methods("POST")
	admin.HandleFunc("/ui/analytics", s.LoadAnalytics).Methods("POST")
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Failed to render %s: %v", name, err)
	}
}

// sessionFor resolves the visitor's session; the user id comes from the
// query or the access token cookie.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) *session.Session {
	return s.sessions.Get(w, r, session.UserID(r, s.secret))
}

// captureViewport records the scroll geometry the page posts with each
// action, so modal scroll locking restores the exact offset.
func captureViewport(sess *session.Session, r *http.Request) {
	scrollY, _ := strconv.Atoi(r.FormValue("scroll_y"))
	scrollbar, _ := strconv.Atoi(r.FormValue("scrollbar_width"))
	sess.State.Modals.SetViewport(view.Viewport{ScrollY: scrollY, ScrollbarWidth: scrollbar})
}

// backToBooking redirects an action back to the booking page.
func (s *Server) backToBooking(w http.ResponseWriter, r *http.Request, userID int) {
	target := "/main_page"
	if userID != 0 {
		target += "?user_id=" + strconv.Itoa(userID)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func pathID(r *http.Request, name string) int {
	id, _ := strconv.Atoi(mux.Vars(r)[name])
	return id
}
