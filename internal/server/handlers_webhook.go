package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/interview-screener/internal/store"
	"github.com/jonathan/interview-screener/internal/types"
)

const (
	webhookSignatureHeader = "X-Webhook-Signature"
	maxWebhookBodyBytes    = 4 << 20
)

// TranscriptWebhookPayload is what the transcript provider posts when an
// interview ends.
type TranscriptWebhookPayload struct {
	SessionID  string `json:"session_id"`
	Transcript string `json:"transcript"`
	Status     string `json:"status,omitempty"`
}

// handleTranscriptWebhook receives a completed interview transcript, verifies
// its signature, and scores the session. The transcript is persisted even when
// scoring fails, so a later rescore can pick it up.
func (s *Server) handleTranscriptWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read body")
		return
	}

	if !s.verifyWebhookSignature(body, r.Header.Get(webhookSignatureHeader)) {
		s.errorResponse(w, http.StatusUnauthorized, "Invalid webhook signature")
		return
	}

	var payload TranscriptWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid payload: "+err.Error())
		return
	}

	sessionID, err := uuid.Parse(payload.SessionID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session_id")
		return
	}
	if strings.TrimSpace(payload.Transcript) == "" {
		s.errorResponse(w, http.StatusBadRequest, "Transcript is empty")
		return
	}

	session, err := s.repo.GetSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Session not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get session: "+err.Error())
		return
	}

	session.Transcript = payload.Transcript
	session.Status = types.SessionStatusCompleted

	scored := false
	interviewAnalysis, err := s.scoreSession(r, session)
	if err != nil {
		s.logger.Error("webhook scoring failed, transcript stored for rescore",
			zap.String("session_id", session.ID.String()),
			zap.Error(err))
	} else {
		session.Analysis = interviewAnalysis
		scored = true
	}

	if err := s.repo.UpdateSession(r.Context(), session); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to store session: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status": "ok",
		"scored": scored,
	})
}

// verifyWebhookSignature checks the hex-encoded HMAC-SHA256 of the body
// against the shared secret.
func (s *Server) verifyWebhookSignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	signature = strings.TrimPrefix(signature, "sha256=")

	provided, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(s.webhookSecret))
	mac.Write(body)
	return hmac.Equal(provided, mac.Sum(nil))
}
