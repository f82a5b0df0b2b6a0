package api

import (
	"encoding/json"
	"net/http"

	"holdout/internal/sim"
)

// Handler methods for routerHandlers. Used by both the standalone router
// (for testing) and the full Server.

func (h *routerHandlers) handleGetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.engine.Snapshot())
}

// handleGetCatalog exposes the immutable content catalogs so clients can
// render pickers and tooltips without hardcoding them.
func (h *routerHandlers) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	enemies := make([]map[string]any, 0)
	for _, d := range sim.AllEnemyDefs() {
		enemies = append(enemies, map[string]any{
			"kind":          d.Kind.String(),
			"name":          d.Name,
			"maxHealth":     d.MaxHealth,
			"contactDamage": d.ContactDamage,
			"speed":         d.Speed,
			"width":         d.Width(),
			"height":        d.Height(),
		})
	}
	weapons := make([]map[string]any, 0)
	for _, d := range sim.AllWeapons() {
		weapons = append(weapons, map[string]any{
			"id":      d.ID,
			"name":    d.Name,
			"maxAmmo": d.MaxAmmo,
			"damage":  d.Damage,
			"pellets": d.Pellets,
			"auto":    d.Auto,
		})
	}
	lethals := make([]map[string]any, 0)
	for _, d := range sim.AllLethals() {
		lethals = append(lethals, map[string]any{
			"id":       d.ID,
			"name":     d.Name,
			"damage":   d.Damage,
			"radius":   d.Radius,
			"carryCap": d.CarryCap,
		})
	}
	writeJSON(w, map[string]any{
		"enemies": enemies,
		"weapons": weapons,
		"lethals": lethals,
	})
}

func (h *routerHandlers) handleInput(w http.ResponseWriter, r *http.Request) {
	var in sim.InputFrame
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, "invalid input frame", http.StatusBadRequest)
		return
	}
	h.engine.SetInput(in)
	writeJSON(w, map[string]bool{"ok": true})
}

func (h *routerHandlers) handlePause(w http.ResponseWriter, r *http.Request) {
	h.engine.Pause()
	writeJSON(w, map[string]bool{"paused": true})
}

func (h *routerHandlers) handleResume(w http.ResponseWriter, r *http.Request) {
	h.engine.Resume()
	writeJSON(w, map[string]bool{"paused": false})
}

func (h *routerHandlers) handleReset(w http.ResponseWriter, r *http.Request) {
	h.engine.Reset()
	writeJSON(w, map[string]bool{"ok": true})
}

func (h *routerHandlers) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Stat string `json:"stat"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Stat == "" {
		writeError(w, "invalid upgrade request", http.StatusBadRequest)
		return
	}
	if !h.engine.PurchaseUpgrade(req.Stat) {
		writeError(w, "upgrade rejected", http.StatusConflict)
		return
	}
	writeJSON(w, map[string]bool{"ok": true})
}

func (h *routerHandlers) handleSave(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.engine.Save())
}

func (h *routerHandlers) handleLoad(w http.ResponseWriter, r *http.Request) {
	var s sim.SaveState
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, "invalid save payload", http.StatusBadRequest)
		return
	}
	if err := h.engine.Restore(s); err != nil {
		writeError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, map[string]bool{"ok": true})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
