package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"scythe/internal/config"
	"scythe/internal/engine"
	"scythe/internal/metrics"
	qr "scythe/internal/qrcode"
	"scythe/internal/settings"
	"scythe/internal/table"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	cfg       config.Config
	generator *engine.Generator
	settings  settings.Store
	metrics   metrics.Recorder
	logger    *zap.Logger

	tables *table.Manager
	mu     sync.Mutex
	hubs   map[string]*Hub
}

func NewHandlers(cfg config.Config, deps Deps) *Handlers {
	return &Handlers{
		cfg:       cfg,
		generator: deps.Generator,
		settings:  deps.Settings,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
		tables:    table.NewManager(),
		hubs:      make(map[string]*Hub),
	}
}

// CatalogResponse is the catalog filtered for one expansion toggle.
type CatalogResponse struct {
	Factions           []engine.Faction     `json:"factions"`
	PlayerBoards       []engine.PlayerBoard `json:"player_boards"`
	PlayerCountOptions []int                `json:"player_count_options"`
	RingSize           int                  `json:"ring_size"`
}

// SettingsResponse returns stored settings and the options they resolve to.
type SettingsResponse struct {
	Profile  string            `json:"profile"`
	Settings settings.Settings `json:"settings"`
	Options  engine.Options    `json:"options"`
}

// HandleCatalog serves the factions and boards available with or without
// the Invaders from Afar expansion.
func (h *Handlers) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	invaders, err := boolParam(r, "invaders")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c := h.generator.Catalog()
	factions, boards := c.Filter(invaders)
	writeJSON(w, http.StatusOK, CatalogResponse{
		Factions:           factions,
		PlayerBoards:       boards,
		PlayerCountOptions: c.PlayerCountOptions(invaders),
		RingSize:           c.RingSize(),
	})
}

// HandleGenerate draws a setup for the posted options. With a profile
// parameter the options are remembered as that profile's settings.
func (h *Handlers) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var opts engine.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		http.Error(w, "invalid options", http.StatusBadRequest)
		return
	}

	setup, err := h.generator.Generate(opts)
	if err != nil {
		if errors.Is(err, engine.ErrConfiguration) {
			h.metrics.SetupFailed(metrics.FailureConfiguration)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.metrics.SetupFailed(metrics.FailureInternal)
		h.logger.Error("generate failed", zap.Error(err))
		http.Error(w, "generation failed", http.StatusInternalServerError)
		return
	}
	h.metrics.SetupGenerated(opts.PlayerCount)

	if profile := r.URL.Query().Get("profile"); profile != "" {
		if err := h.settings.Save(r.Context(), profile, settings.FromOptions(opts)); err != nil {
			h.logger.Warn("save settings", zap.String("profile", profile), zap.Error(err))
		}
	}
	writeJSON(w, http.StatusOK, setup)
}

// HandleSettings reads (GET) or replaces (PUT) a profile's settings.
func (h *Handlers) HandleSettings(w http.ResponseWriter, r *http.Request) {
	profile := r.URL.Query().Get("profile")
	if profile == "" {
		profile = settings.DefaultProfile
	}

	switch r.Method {
	case http.MethodGet:
	case http.MethodPut:
		var st settings.Settings
		if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
			http.Error(w, "invalid settings", http.StatusBadRequest)
			return
		}
		if err := h.settings.Save(r.Context(), profile, st); err != nil {
			h.settingsError(w, profile, err)
			return
		}
	default:
		w.Header().Set("Allow", "GET, PUT")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	st, err := h.settings.Load(r.Context(), profile)
	if err != nil {
		h.settingsError(w, profile, err)
		return
	}
	writeJSON(w, http.StatusOK, SettingsResponse{
		Profile:  profile,
		Settings: st,
		Options:  st.Options(h.generator.Catalog(), engine.DefaultOptions()),
	})
}

func (h *Handlers) settingsError(w http.ResponseWriter, profile string, err error) {
	if errors.Is(err, settings.ErrInvalidProfile) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.logger.Error("settings store", zap.String("profile", profile), zap.Error(err))
	http.Error(w, "settings unavailable", http.StatusInternalServerError)
}

// HandleCreateTable opens a shared table and redirects to its page.
func (h *Handlers) HandleCreateTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	tableID := h.tables.Create()
	hub := NewHub(h.tables.Get(tableID), h.generator, h.metrics, h.logger, h.cfg.TableIdle)
	hub.OnClose(func() { h.closeTable(tableID) })

	h.mu.Lock()
	h.hubs[tableID] = hub
	h.mu.Unlock()
	h.metrics.TableOpened()
	go hub.Run()
	h.logger.Info("table created", zap.String("table", tableID), zap.Int("open", h.tables.Len()))

	http.Redirect(w, r, "/table.html?table="+tableID, http.StatusSeeOther)
}

// closeTable forgets a table once its hub has stopped.
func (h *Handlers) closeTable(tableID string) {
	h.mu.Lock()
	delete(h.hubs, tableID)
	h.mu.Unlock()

	if h.tables.Remove(tableID) {
		h.metrics.TableClosed()
		h.logger.Info("table closed", zap.String("table", tableID), zap.Int("open", h.tables.Len()))
	}
}

// HandleQR generates a QR code PNG for joining a table.
func (h *Handlers) HandleQR(w http.ResponseWriter, r *http.Request) {
	tableID := r.URL.Query().Get("table")
	if tableID == "" {
		http.Error(w, "missing table parameter", http.StatusBadRequest)
		return
	}
	if h.tables.Get(tableID) == nil {
		http.Error(w, "table not found", http.StatusNotFound)
		return
	}
	base := strings.TrimSuffix(h.cfg.PublicURL, "/")
	if base == "" {
		base = "http://" + r.Host
	}
	png, err := qr.Generate(fmt.Sprintf("%s/table.html?table=%s", base, tableID), h.cfg.QRSize)
	if err != nil {
		h.logger.Error("qr generation failed", zap.Error(err))
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// HandleWS handles WebSocket connections.
func (h *Handlers) HandleWS(w http.ResponseWriter, r *http.Request) {
	tableID := r.URL.Query().Get("table")
	if tableID == "" {
		http.Error(w, "missing table parameter", http.StatusBadRequest)
		return
	}
	hub := h.hub(tableID)
	if hub == nil {
		http.Error(w, "table not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade error", zap.Error(err))
		return
	}

	client := NewClient(hub, conn, uuid.NewString())
	if !hub.Register(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

func (h *Handlers) hub(tableID string) *Hub {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hubs[tableID]
}

// Close stops every hub. Each hub removes its own table as it stops.
func (h *Handlers) Close() {
	h.mu.Lock()
	hubs := make([]*Hub, 0, len(h.hubs))
	for _, hub := range h.hubs {
		hubs = append(hubs, hub)
	}
	h.mu.Unlock()

	for _, hub := range hubs {
		hub.Stop()
	}
}

func boolParam(r *http.Request, name string) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s parameter %q", name, v)
	}
	return b, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
