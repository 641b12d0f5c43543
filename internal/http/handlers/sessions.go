package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ticketlane/eventwizard/internal/http/middlewares"
	"github.com/ticketlane/eventwizard/internal/observability"
	"github.com/ticketlane/eventwizard/internal/payload"
	"github.com/ticketlane/eventwizard/internal/store"
	"github.com/ticketlane/eventwizard/internal/timeutil"
	"github.com/ticketlane/eventwizard/internal/upstream"
	"github.com/ticketlane/eventwizard/internal/wizard"
)

// EventsBackend is the slice of the upstream client the wizard needs.
type EventsBackend interface {
	Event(ctx context.Context, eventID string) (upstream.EventDetail, error)
	Slots(ctx context.Context, eventID string) (upstream.SlotBundle, error)
	CreateEvent(ctx context.Context, body *bytes.Buffer, contentType string) (string, error)
	UpdateEvent(ctx context.Context, eventID string, body *bytes.Buffer, contentType string) error
	CreateSlots(ctx context.Context, p payload.SlotPayload) error
	UpdateSlots(ctx context.Context, eventRefID string, p payload.SlotPayload) error
}

type SessionsHandler struct {
	sessions store.Sessions
	backend  EventsBackend
	prom     *observability.Prom
	log      *slog.Logger
}

func NewSessionsHandler(sessions store.Sessions, backend EventsBackend, prom *observability.Prom, log *slog.Logger) *SessionsHandler {
	return &SessionsHandler{
		sessions: sessions,
		backend:  backend,
		prom:     prom,
		log:      log,
	}
}

// sessionView is what every session endpoint returns: the state plus the
// derived bits a client needs to render step indicators and the Next gate.
type sessionView struct {
	*wizard.Session
	Steps     []wizard.Step `json:"steps"`
	StepValid bool          `json:"stepValid"`
}

func view(s *wizard.Session) sessionView {
	return sessionView{
		Session:   s,
		Steps:     wizard.StepsFor(s.Mode),
		StepValid: s.StepValid(),
	}
}

type createSessionRequest struct {
	Mode    string `json:"mode" binding:"required,oneof=create edit-event edit-slots"`
	EventID string `json:"eventId" binding:"omitempty,max=80"`
}

func (h *SessionsHandler) CreateSession(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		RespondError(ctx, http.StatusUnauthorized, "unauthorized", "No authenticated operator", nil)
		return
	}

	var req createSessionRequest
	if !BindJSON(ctx, &req) {
		return
	}

	s, err := wizard.NewSession(userID, wizard.Mode(req.Mode), req.EventID)
	if err != nil {
		RespondBadRequest(ctx, err.Error(), nil)
		return
	}

	if s.Mode != wizard.ModeCreate {
		if err := h.hydrate(ctx, s); err != nil {
			RespondUpstream(ctx, "Could not load event data")
			return
		}
	}

	if err := h.sessions.Create(ctx.Request.Context(), s); err != nil {
		h.log.Error("create session", "err", err)
		RespondInternal(ctx, "Could not create wizard session")
		return
	}

	if h.prom != nil {
		h.prom.SessionsStarted.WithLabelValues(string(s.Mode)).Inc()
	}

	ctx.JSON(http.StatusCreated, view(s))
}

// hydrate fills an edit session's form from what is stored upstream. The
// metadata edit flow skips the slot fetch entirely: its slots stay untouched.
func (h *SessionsHandler) hydrate(ctx *gin.Context, s *wizard.Session) error {
	rctx := ctx.Request.Context()

	detail, err := h.backend.Event(rctx, s.EventID)
	if err != nil {
		return err
	}

	bundle := upstream.SlotBundle{}
	if s.Mode == wizard.ModeEditSlots {
		bundle, err = h.backend.Slots(rctx, s.EventID)
		if err != nil {
			return err
		}
	}

	s.Form = upstream.HydrateForm(detail, bundle)

	return nil
}

// load fetches the session and enforces that the caller owns it. Sessions of
// other operators respond as not found rather than forbidden.
func (h *SessionsHandler) load(ctx *gin.Context) (*wizard.Session, bool) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		RespondError(ctx, http.StatusUnauthorized, "unauthorized", "No authenticated operator", nil)
		return nil, false
	}

	s, err := h.sessions.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			RespondNotFound(ctx, "Wizard session not found")
			return nil, false
		}
		h.log.Error("load session", "err", err)
		RespondInternal(ctx, "Could not load wizard session")
		return nil, false
	}

	if s.UserID != userID {
		RespondNotFound(ctx, "Wizard session not found")
		return nil, false
	}

	return s, true
}

func (h *SessionsHandler) save(ctx *gin.Context, s *wizard.Session) {
	if err := h.sessions.Save(ctx.Request.Context(), s); err != nil {
		h.log.Error("save session", "err", err)
		RespondInternal(ctx, "Could not save wizard session")
		return
	}

	ctx.JSON(http.StatusOK, view(s))
}

// transitionError maps the wizard's sentinel errors onto the API's error
// taxonomy: locked/invalid states are conflicts, everything about the
// request's shape is a bad request.
func (h *SessionsHandler) transitionError(ctx *gin.Context, s *wizard.Session, err error) {
	switch {
	case errors.Is(err, wizard.ErrSlotsLocked):
		RespondConflict(ctx, "slots_locked", "Slots cannot be edited in this mode")
	case errors.Is(err, wizard.ErrMetadataLocked):
		RespondConflict(ctx, "metadata_locked", "Event metadata cannot be edited in this mode")
	case errors.Is(err, wizard.ErrStepInvalid):
		if h.prom != nil {
			h.prom.TransitionsRejected.WithLabelValues(s.Step.String()).Inc()
		}
		RespondConflict(ctx, "step_invalid", "Current step is incomplete")
	default:
		RespondBadRequest(ctx, err.Error(), nil)
	}
}

func (h *SessionsHandler) GetSession(ctx *gin.Context) {
	s, ok := h.load(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, view(s))
}

func (h *SessionsHandler) DeleteSession(ctx *gin.Context) {
	s, ok := h.load(ctx)
	if !ok {
		return
	}

	if err := h.sessions.Delete(ctx.Request.Context(), s.ID); err != nil {
		h.log.Error("delete session", "err", err)
		RespondInternal(ctx, "Could not delete wizard session")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *SessionsHandler) PatchForm(ctx *gin.Context) {
	s, ok := h.load(ctx)
	if !ok {
		return
	}

	var patch wizard.MetadataPatch
	if !BindJSON(ctx, &patch) {
		return
	}

	if err := s.PatchMetadata(patch); err != nil {
		h.transitionError(ctx, s, err)
		return
	}

	h.save(ctx, s)
}

type setDatesRequest struct {
	StartDate     string   `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate       string   `json:"endDate" binding:"required,datetime=2006-01-02"`
	SelectedDates []string `json:"selectedDates" binding:"dive,datetime=2006-01-02"`
}

func (h *SessionsHandler) SetDates(ctx *gin.Context) {
	s, ok := h.load(ctx)
	if !ok {
		return
	}

	var req setDatesRequest
	if !BindJSON(ctx, &req) {
		return
	}

	if err := s.SetDates(req.StartDate, req.EndDate, req.SelectedDates); err != nil {
		h.transitionError(ctx, s, err)
		return
	}

	h.save(ctx, s)
}

type addSlotRequest struct {
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
}

func (h *SessionsHandler) AddSlot(ctx *gin.Context) {
	s, ok := h.load(ctx)
	if !ok {
		return
	}

	var req addSlotRequest
	if !BindJSON(ctx, &req) {
		return
	}

	if err := s.AddSlot(req.Date); err != nil {
		h.transitionError(ctx, s, err)
		return
	}

	h.save(ctx, s)
}

type updateSlotRequest struct {
	Date  string `json:"date" binding:"required,datetime=2006-01-02"`
	Index *int   `json:"index" binding:"required,min=0"`
	Field string `json:"field" binding:"required,oneof=startTime endTime capacity"`
	Value string `json:"value"`
}

func (h *SessionsHandler) UpdateSlot(ctx *gin.Context) {
	s, ok := h.load(ctx)
	if !ok {
		return
	}

	var req updateSlotRequest
	if !BindJSON(ctx, &req) {
		return
	}

	if err := s.UpdateSlot(req.Date, *req.Index, wizard.SlotField(req.Field), req.Value); err != nil {
		h.transitionError(ctx, s, err)
		return
	}

	h.save(ctx, s)
}

type removeSlotRequest struct {
	Date  string `json:"date" binding:"required,datetime=2006-01-02"`
	Index *int   `json:"index" binding:"required,min=0"`
}

func (h *SessionsHandler) RemoveSlot(ctx *gin.Context) {
	s, ok := h.load(ctx)
	if !ok {
		return
	}

	var req removeSlotRequest
	if !BindJSON(ctx, &req) {
		return
	}

	if err := s.RemoveSlot(req.Date, *req.Index); err != nil {
		h.transitionError(ctx, s, err)
		return
	}

	h.save(ctx, s)
}

type addCategoryRequest struct {
	Date      string  `json:"date" binding:"required,datetime=2006-01-02"`
	SlotIndex *int    `json:"slotIndex" binding:"required,min=0"`
	Name      string  `json:"name" binding:"required,max=80"`
	Price     float64 `json:"price" binding:"min=0"`
	Quantity  int     `json:"quantity" binding:"min=0"`
}

func (h *SessionsHandler) AddCategory(ctx *gin.Context) {
	s, ok := h.load(ctx)
	if !ok {
		return
	}

	var req addCategoryRequest
	if !BindJSON(ctx, &req) {
		return
	}

	c := wizard.TicketCategory{Name: req.Name, Price: req.Price, Quantity: req.Quantity}
	if err := s.AddCategory(req.Date, *req.SlotIndex, c); err != nil {
		h.transitionError(ctx, s, err)
		return
	}

	h.save(ctx, s)
}

type updateCategoryRequest struct {
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	SlotIndex *int   `json:"slotIndex" binding:"required,min=0"`
	CatIndex  *int   `json:"catIndex" binding:"required,min=0"`
	Field     string `json:"field" binding:"required,oneof=name price quantity"`
	Value     string `json:"value"`
}

func (h *SessionsHandler) UpdateCategory(ctx *gin.Context) {
	s, ok := h.load(ctx)
	if !ok {
		return
	}

	var req updateCategoryRequest
	if !BindJSON(ctx, &req) {
		return
	}

	if err := s.UpdateCategory(req.Date, *req.SlotIndex, *req.CatIndex, wizard.CategoryField(req.Field), req.Value); err != nil {
		h.transitionError(ctx, s, err)
		return
	}

	h.save(ctx, s)
}

type removeCategoryRequest struct {
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	SlotIndex *int   `json:"slotIndex" binding:"required,min=0"`
	CatIndex  *int   `json:"catIndex" binding:"required,min=0"`
}

func (h *SessionsHandler) RemoveCategory(ctx *gin.Context) {
	s, ok := h.load(ctx)
	if !ok {
		return
	}

	var req removeCategoryRequest
	if !BindJSON(ctx, &req) {
		return
	}

	if err := s.RemoveCategory(req.Date, *req.SlotIndex, *req.CatIndex); err != nil {
		h.transitionError(ctx, s, err)
		return
	}

	h.save(ctx, s)
}

// SeedSlotTemplate hands the client the starting point for the
// apply-to-all-dates popup.
func (h *SessionsHandler) SeedSlotTemplate(ctx *gin.Context) {
	s, ok := h.load(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"template": wizard.SeedSlotTemplate(s.Form, ctx.Query("date")),
	})
}

type applySlotRequest struct {
	StartTime      string                `json:"startTime" binding:"required"`
	EndTime        string                `json:"endTime" binding:"required"`
	SeatCategories []addCategoryTemplate `json:"seatCategories" binding:"omitempty,dive"`
}

// ApplySlotToAllDates fans a slot template out to every selected date. The
// template is usually the seeded first slot of the active date, seat
// categories included; the engine re-ids the category clones per date.
func (h *SessionsHandler) ApplySlotToAllDates(ctx *gin.Context) {
	s, ok := h.load(ctx)
	if !ok {
		return
	}

	var req applySlotRequest
	if !BindJSON(ctx, &req) {
		return
	}

	tpl := wizard.TimeSlot{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Duration:  timeutil.Duration(req.StartTime, req.EndTime),
	}
	for _, c := range req.SeatCategories {
		tpl.SeatCategories = append(tpl.SeatCategories, wizard.TicketCategory{
			Name:     c.Name,
			Price:    c.Price,
			Quantity: c.Quantity,
		})
	}

	if err := s.ApplySlotTemplate(tpl); err != nil {
		h.transitionError(ctx, s, err)
		return
	}

	h.save(ctx, s)
}

type applyCategoriesRequest struct {
	Categories []addCategoryTemplate `json:"categories" binding:"required,min=1,dive"`
}

type addCategoryTemplate struct {
	Name     string  `json:"name" binding:"required,max=80"`
	Price    float64 `json:"price" binding:"min=0"`
	Quantity int     `json:"quantity" binding:"min=0"`
}

func (h *SessionsHandler) ApplyCategoriesToAllSlots(ctx *gin.Context) {
	s, ok := h.load(ctx)
	if !ok {
		return
	}

	var req applyCategoriesRequest
	if !BindJSON(ctx, &req) {
		return
	}

	templates := make([]wizard.TicketCategory, 0, len(req.Categories))
	for _, c := range req.Categories {
		templates = append(templates, wizard.TicketCategory{Name: c.Name, Price: c.Price, Quantity: c.Quantity})
	}

	if err := s.ApplyCategoryTemplates(templates); err != nil {
		h.transitionError(ctx, s, err)
		return
	}

	h.save(ctx, s)
}

func (h *SessionsHandler) Next(ctx *gin.Context) {
	s, ok := h.load(ctx)
	if !ok {
		return
	}

	if err := s.Next(); err != nil {
		h.transitionError(ctx, s, err)
		return
	}

	h.save(ctx, s)
}

func (h *SessionsHandler) Prev(ctx *gin.Context) {
	s, ok := h.load(ctx)
	if !ok {
		return
	}

	s.Prev()

	h.save(ctx, s)
}

type gotoRequest struct {
	Step *int `json:"step" binding:"required,min=1,max=6"`
}

func (h *SessionsHandler) Goto(ctx *gin.Context) {
	s, ok := h.load(ctx)
	if !ok {
		return
	}

	var req gotoRequest
	if !BindJSON(ctx, &req) {
		return
	}

	if err := s.Goto(wizard.Step(*req.Step)); err != nil {
		h.transitionError(ctx, s, err)
		return
	}

	h.save(ctx, s)
}

func (h *SessionsHandler) Summary(ctx *gin.Context) {
	s, ok := h.load(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, payload.Summarize(s.Form))
}

// UploadImages stashes multipart image files on the session. Field names
// match the upstream contract: card_image, banner_image, extra_images[].
func (h *SessionsHandler) UploadImages(ctx *gin.Context) {
	s, ok := h.load(ctx)
	if !ok {
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		RespondBadRequest(ctx, "Invalid multipart form", nil)
		return
	}

	var card, banner *wizard.ImageRef
	var gallery []wizard.ImageRef

	if img, ok := readFormImage(firstHeader(form.File["card_image"])); ok {
		card = &img
	}
	if img, ok := readFormImage(firstHeader(form.File["banner_image"])); ok {
		banner = &img
	}
	for _, fh := range form.File["extra_images[]"] {
		if img, ok := readFormImage(fh); ok {
			gallery = append(gallery, img)
		}
	}

	if card == nil && banner == nil && gallery == nil {
		RespondBadRequest(ctx, "No image files provided", nil)
		return
	}

	if err := s.SetImages(card, banner, gallery); err != nil {
		h.transitionError(ctx, s, err)
		return
	}

	h.save(ctx, s)
}

func (h *SessionsHandler) Submit(ctx *gin.Context) {
	s, ok := h.load(ctx)
	if !ok {
		return
	}

	if !s.ReadyToSubmit() {
		if h.prom != nil {
			h.prom.TransitionsRejected.WithLabelValues(s.Step.String()).Inc()
		}
		RespondConflict(ctx, "step_invalid", "Wizard has incomplete steps")
		return
	}

	eventID, err := h.submit(ctx.Request.Context(), s)
	if err != nil {
		// session stays as-is so the operator can retry
		if h.prom != nil {
			h.prom.Submissions.WithLabelValues(string(s.Mode), "failed").Inc()
		}
		h.log.Error("submit failed", "session_id", s.ID, "mode", s.Mode, "err", err)
		RespondUpstream(ctx, "Could not save the event, please try again")
		return
	}

	if err := h.sessions.Delete(ctx.Request.Context(), s.ID); err != nil {
		h.log.Warn("cleanup after submit", "session_id", s.ID, "err", err)
	}

	if h.prom != nil {
		h.prom.Submissions.WithLabelValues(string(s.Mode), "ok").Inc()
	}

	ctx.JSON(http.StatusOK, gin.H{"eventId": eventID})
}

func (h *SessionsHandler) submit(ctx context.Context, s *wizard.Session) (string, error) {
	switch s.Mode {
	case wizard.ModeCreate:
		body, ctype, err := payload.MetadataForm(s.UserID, s.Form)
		if err != nil {
			return "", err
		}

		eventID, err := h.backend.CreateEvent(ctx, body, ctype)
		if err != nil {
			return "", err
		}

		if err := h.backend.CreateSlots(ctx, payload.BuildSlotPayload(eventID, s.Form)); err != nil {
			return "", err
		}

		return eventID, nil

	case wizard.ModeEditEvent:
		body, ctype, err := payload.MetadataForm(s.UserID, s.Form)
		if err != nil {
			return "", err
		}

		return s.EventID, h.backend.UpdateEvent(ctx, s.EventID, body, ctype)

	default: // ModeEditSlots
		return s.EventID, h.backend.UpdateSlots(ctx, s.EventID, payload.BuildSlotPayload(s.EventID, s.Form))
	}
}

func firstHeader(headers []*multipart.FileHeader) *multipart.FileHeader {
	if len(headers) == 0 {
		return nil
	}

	return headers[0]
}

func readFormImage(fh *multipart.FileHeader) (wizard.ImageRef, bool) {
	if fh == nil {
		return wizard.ImageRef{}, false
	}

	f, err := fh.Open()
	if err != nil {
		return wizard.ImageRef{}, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil || len(data) == 0 {
		return wizard.ImageRef{}, false
	}

	return wizard.ImageRef{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, true
}
