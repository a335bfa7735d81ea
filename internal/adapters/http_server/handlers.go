// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_reservation/internal/app"
	"hotel_reservation/internal/domain"
)

type Handlers struct {
	B     *app.BookingService
	Q     *app.QueryService
	Audit domain.AuditReader // optional
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Use(s.limiter.Handler)

		r.Get("/hotel", h.getHotel)

		r.Post("/rooms", h.addRoom)
		r.Get("/rooms/available", h.searchRooms)

		r.Post("/guests", h.registerGuest)
		r.Get("/guests/{id}", h.getGuest)
		r.Patch("/guests/{id}", h.updateGuest)
		r.Post("/guests/{id}/payments", h.recordPayment)
		r.Post("/guests/{id}/feedback", h.leaveFeedback)

		r.Post("/reservations", h.makeReservation)
		r.Get("/reservations", h.listReservations)
		r.Get("/reservations/{id}", h.getReservation)
		r.Delete("/reservations/{id}", h.cancelReservation)
		r.Get("/reservations/{id}/events", h.reservationEvents)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain errors onto problem responses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrRoomUnavailable):
		writeProblem(w, http.StatusConflict, "Room Unavailable", err.Error())
	case errors.Is(err, domain.ErrGuestExists):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, domain.ErrRoomNotFound),
		errors.Is(err, domain.ErrGuestNotFound),
		errors.Is(err, domain.ErrReservationNotFound),
		errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrInvalidPayment):
		writeProblem(w, http.StatusBadRequest, "Invalid Payment", err.Error())
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCacheable writes v with a weak ETag and honours If-None-Match.
func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write body")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write body")
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return 0, false
	}
	return id, true
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	writeCacheable(w, r, h.Q.HotelSummary(r.Context()))
}

type addRoomReq struct {
	ID        int      `json:"id"`
	Type      string   `json:"type"`
	Amenities []string `json:"amenities"`
}

func (h *Handlers) addRoom(w http.ResponseWriter, r *http.Request) {
	var req addRoomReq
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusCreated, h.B.AddRoom(r.Context(), req.ID, req.Type, req.Amenities))
}

// searchRooms: ?type=Suite&amenity=WiFi&amenity=TV (amenities may also be comma-separated).
func (h *Handlers) searchRooms(w http.ResponseWriter, r *http.Request) {
	var f domain.RoomFilter
	qs := r.URL.Query()
	if qs.Has("type") {
		t := qs.Get("type")
		f.Type = &t
	}
	if vals, ok := qs["amenity"]; ok {
		f.Amenities = []string{}
		for _, v := range vals {
			for _, a := range strings.Split(v, ",") {
				if a = strings.TrimSpace(a); a != "" {
					f.Amenities = append(f.Amenities, a)
				}
			}
		}
	}
	rooms, err := h.Q.SearchAvailableRooms(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCacheable(w, r, rooms)
}

func (h *Handlers) registerGuest(w http.ResponseWriter, r *http.Request) {
	var req app.NewGuest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid Guest", "name is required")
		return
	}
	gv, err := h.B.RegisterGuest(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, gv)
}

func (h *Handlers) getGuest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	gv, err := h.Q.GetGuest(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCacheable(w, r, gv)
}

// updateGuestReq uses pointers so an omitted field differs from false or "".
type updateGuestReq struct {
	Email         *string `json:"email"`
	ContactInfo   *string `json:"contact_info"`
	LoyaltyStatus *bool   `json:"loyalty_status"`
}

func (h *Handlers) updateGuest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req updateGuestReq
	if !decode(w, r, &req) {
		return
	}
	gv, err := h.B.UpdateGuest(r.Context(), id, domain.GuestUpdate{
		Email:         req.Email,
		ContactInfo:   req.ContactInfo,
		LoyaltyStatus: req.LoyaltyStatus,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gv)
}

func (h *Handlers) recordPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req app.PaymentInput
	if !decode(w, r, &req) {
		return
	}
	pv, err := h.B.RecordPayment(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pv)
}

type feedbackReq struct {
	Comments string `json:"comments"`
}

func (h *Handlers) leaveFeedback(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req feedbackReq
	if !decode(w, r, &req) {
		return
	}
	fv, err := h.B.LeaveFeedback(r.Context(), id, req.Comments)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, fv)
}

func (h *Handlers) makeReservation(w http.ResponseWriter, r *http.Request) {
	var req app.ReservationRequest
	if !decode(w, r, &req) {
		return
	}
	rv, err := h.B.MakeReservation(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", "/v1/reservations/"+strconv.Itoa(rv.ID))
	writeJSON(w, http.StatusCreated, rv)
}

func (h *Handlers) listReservations(w http.ResponseWriter, r *http.Request) {
	writeCacheable(w, r, h.Q.ListReservations(r.Context()))
}

func (h *Handlers) getReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rv, err := h.Q.GetReservation(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCacheable(w, r, rv)
}

func (h *Handlers) cancelReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.B.CancelReservation(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) reservationEvents(w http.ResponseWriter, r *http.Request) {
	if h.Audit == nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "audit log disabled")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}
	events, err := h.Audit.ListEvents(r.Context(), id, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if events == nil {
		events = []domain.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}
