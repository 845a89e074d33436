package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"hearth/contexts/workspace/notes-service/application"
	"hearth/contexts/workspace/notes-service/ports"
	httptransport "hearth/contexts/workspace/notes-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) ListNotesHandler(ctx context.Context, projectID string, userID string) (httptransport.NoteListResponse, error) {
	notes, err := h.Service.ListNotes(ctx, strings.TrimSpace(projectID), userID)
	if err != nil {
		return httptransport.NoteListResponse{}, err
	}
	resp := httptransport.NoteListResponse{Status: "success", Data: []httptransport.NotePayload{}}
	for _, note := range notes {
		resp.Data = append(resp.Data, notePayload(note))
	}
	return resp, nil
}

func (h Handler) CreateNoteHandler(ctx context.Context, projectID string, userID string, req httptransport.CreateNoteRequest) (httptransport.NoteResponse, error) {
	note, err := h.Service.CreateNote(ctx, strings.TrimSpace(projectID), userID, ports.CreateNoteInput{
		Title:  strings.TrimSpace(req.Title),
		Body:   req.Body,
		Pinned: req.Pinned,
	})
	if err != nil {
		return httptransport.NoteResponse{}, err
	}
	return httptransport.NoteResponse{Status: "success", Data: notePayload(note)}, nil
}

func (h Handler) GetNoteHandler(ctx context.Context, projectID string, noteID string, userID string) (httptransport.NoteResponse, error) {
	note, err := h.Service.GetNote(ctx, strings.TrimSpace(projectID), strings.TrimSpace(noteID), userID)
	if err != nil {
		return httptransport.NoteResponse{}, err
	}
	return httptransport.NoteResponse{Status: "success", Data: notePayload(note)}, nil
}

func (h Handler) UpdateNoteHandler(ctx context.Context, projectID string, noteID string, userID string, req httptransport.UpdateNoteRequest) (httptransport.NoteResponse, error) {
	note, err := h.Service.UpdateNote(ctx, strings.TrimSpace(projectID), strings.TrimSpace(noteID), userID, ports.UpdateNoteInput{
		Title:  req.Title,
		Body:   req.Body,
		Pinned: req.Pinned,
	})
	if err != nil {
		return httptransport.NoteResponse{}, err
	}
	return httptransport.NoteResponse{Status: "success", Data: notePayload(note)}, nil
}

func (h Handler) DeleteNoteHandler(ctx context.Context, projectID string, noteID string, userID string) (httptransport.NoteResponse, error) {
	note, err := h.Service.DeleteNote(ctx, strings.TrimSpace(projectID), strings.TrimSpace(noteID), userID)
	if err != nil {
		return httptransport.NoteResponse{}, err
	}
	return httptransport.NoteResponse{Status: "success", Data: notePayload(note)}, nil
}

func notePayload(note ports.Note) httptransport.NotePayload {
	return httptransport.NotePayload{
		ID:        note.NoteID,
		ProjectID: note.ProjectID,
		AuthorID:  note.AuthorID,
		Title:     note.Title,
		Body:      note.Body,
		Pinned:    note.Pinned,
		CreatedAt: note.CreatedAt.Format(time.RFC3339),
		UpdatedAt: note.UpdatedAt.Format(time.RFC3339),
	}
}
