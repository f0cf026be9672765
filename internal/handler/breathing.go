package handler

import (
	"net/http"

	"github.com/safespace-dev/safespace/internal/breathing"
	"github.com/safespace-dev/safespace/internal/engine"
	"github.com/safespace-dev/safespace/internal/middleware"
	"github.com/safespace-dev/safespace/internal/utils"
)

type startBreathingRequest struct {
	ExerciseId string `validate:"required" json:"exercise_id"`
}

type breathingResponse struct {
	Active      bool              `json:"active"`
	Session     breathing.Session `json:"session"`
	Progress    float64           `json:"progress"`
	Instruction string            `json:"instruction,omitempty"`
}

func sessionResponse(s breathing.Session) breathingResponse {
	resp := breathingResponse{Active: !s.Idle(), Session: s}
	if resp.Active {
		resp.Progress = breathing.Progress(s)
		resp.Instruction = breathing.Instruction(s)
	}
	return resp
}

func (h *Handler) breathingRunner(w http.ResponseWriter, r *http.Request) *breathing.Runner {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return nil
	}
	return h.breathing.ForUser(user.Id)
}

// ListExercises returns the static exercise catalog.
func (h *Handler) ListExercises(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, breathing.Exercises)
}

// StartBreathing begins a session, replacing any running one. Unknown
// exercise ids fail with 422 and leave the previous session untouched.
func (h *Handler) StartBreathing(w http.ResponseWriter, r *http.Request) {
	runner := h.breathingRunner(w, r)
	if runner == nil {
		return
	}

	var req startBreathingRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	session, err := runner.Start(req.ExerciseId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, sessionResponse(session))
}

func (h *Handler) StopBreathing(w http.ResponseWriter, r *http.Request) {
	runner := h.breathingRunner(w, r)
	if runner == nil {
		return
	}
	runner.Stop()
	writeJSON(w, sessionResponse(runner.Snapshot()))
}

func (h *Handler) RestartBreathing(w http.ResponseWriter, r *http.Request) {
	runner := h.breathingRunner(w, r)
	if runner == nil {
		return
	}

	var req startBreathingRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	session, err := runner.Restart(req.ExerciseId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, sessionResponse(session))
}

// GetBreathing reports the live session snapshot, or idle.
func (h *Handler) GetBreathing(w http.ResponseWriter, r *http.Request) {
	runner := h.breathingRunner(w, r)
	if runner == nil {
		return
	}
	writeJSON(w, sessionResponse(runner.Snapshot()))
}

// Affirmations returns the full list shown on the self-care screen.
func (h *Handler) Affirmations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, engine.Affirmations)
}

// Affirmation draws one supportive line for the self-care screen.
func (h *Handler) Affirmation(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	affirmation := engine.PickAffirmation(h.rng)
	h.mu.Unlock()
	writeJSON(w, map[string]string{"affirmation": affirmation})
}
