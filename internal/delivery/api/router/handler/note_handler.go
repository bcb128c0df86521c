package handler

import (
	"net/http"

	"notes/internal/delivery/api/middleware"
	"notes/internal/delivery/api/response"
	"notes/internal/domain/entity"
	domainerrors "notes/internal/domain/errors"
	"notes/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// NoteHandler serves the caller's notes. Every route sits behind the access guard.
type NoteHandler struct {
	uc usecase.NoteUsecase
}

func NewNoteHandler(uc usecase.NoteUsecase) *NoteHandler {
	return &NoteHandler{uc: uc}
}

func (h *NoteHandler) CreateNote(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	var req NoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	note, err := h.uc.CreateNote(c.Request().Context(), caller, usecase.NoteInput{
		Title:   req.Title,
		Content: *req.Content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toNoteResponse(note))
}

func (h *NoteHandler) ListNotes(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	notes, err := h.uc.ListNotes(c.Request().Context(), caller)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toNoteResponses(notes))
}

func (h *NoteHandler) GetNote(c echo.Context) error {
	caller, noteID, err := callerAndNoteID(c)
	if err != nil {
		return err
	}

	note, err := h.uc.GetNote(c.Request().Context(), caller, noteID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toNoteResponse(note))
}

func (h *NoteHandler) UpdateNote(c echo.Context) error {
	caller, noteID, err := callerAndNoteID(c)
	if err != nil {
		return err
	}

	var req NoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	note, err := h.uc.UpdateNote(c.Request().Context(), caller, noteID, usecase.NoteInput{
		Title:   req.Title,
		Content: *req.Content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toNoteResponse(note))
}

func (h *NoteHandler) DeleteNote(c echo.Context) error {
	caller, noteID, err := callerAndNoteID(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteNote(c.Request().Context(), caller, noteID); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

func currentUser(c echo.Context) (*entity.User, error) {
	user, ok := middleware.GetUser(c)
	if !ok {
		return nil, domainerrors.ErrNotAuthenticated
	}

	return user, nil
}

// callerAndNoteID reports a malformed note ID as a missing note.
func callerAndNoteID(c echo.Context) (*entity.User, uuid.UUID, error) {
	caller, err := currentUser(c)
	if err != nil {
		return nil, uuid.Nil, err
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, uuid.Nil, domainerrors.ErrNoteNotFound
	}

	return caller, noteID, nil
}
