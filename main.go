package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

type StatusResponse struct {
	Settings        GameSettingsDTO   `json:"settings"`
	Config          Config            `json:"config"`
	Board           [][]int           `json:"board"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	BoardWidth      int               `json:"board_width"`
	BoardHeight     int               `json:"board_height"`
	Status          string            `json:"status"`
	WinReason       string            `json:"win_reason"`
	AiThinking      bool              `json:"ai_thinking"`
	History         []historyEntryDTO `json:"history"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type GameSettingsDTO struct {
	Mode        string `json:"mode"`
	HumanPlayer int    `json:"human_player"`
	TurnTimeMs  int    `json:"turn_time_ms"`
}

type apiMove struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type historyEntryDTO struct {
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Player    int     `json:"player"`
	ElapsedMs float64 `json:"elapsed_ms"`
	IsAi      bool    `json:"is_ai"`
}

type historyPayload struct {
	History []historyEntryDTO `json:"history"`
}

type resetPayload struct {
	Board           [][]int `json:"board"`
	NextPlayer      int     `json:"next_player"`
	Winner          int     `json:"winner"`
	Status          string  `json:"status"`
	BoardWidth      int     `json:"board_width"`
	BoardHeight     int     `json:"board_height"`
	WinReason       string  `json:"win_reason"`
	TurnStartedAtMs int64   `json:"turn_started_at_ms"`
}

type settingsPayload struct {
	Settings GameSettingsDTO `json:"settings"`
	Config   Config          `json:"config"`
}

const (
	cellValueEmpty   = 0
	cellValuePlayer1 = 1
	cellValuePlayer2 = 2
	cellValueBlocked = 3
)

func main() {
	logger := NewLogger()
	defer func() { _ = logger.Sync() }()
	SetLogger(logger)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.json"
	}
	if cfg, err := LoadConfig(configPath); err != nil {
		logger.Warnw("config file not loaded, using defaults", "path", configPath, "error", err)
	} else {
		configStore.Update(cfg)
		logger.Infow("config loaded", "path", configPath)
	}

	controller := NewGameController(DefaultGameSettings())
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hub.Run(ctx.Done())
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if controller.Tick() {
					if entry, ok := controller.LatestHistoryEntry(); ok {
						hub.broadcastHistory <- historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}}
					}
					hub.broadcastStatus <- controllerStatus(controller)
				}
			}
		}
	}()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/start", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings GameSettingsDTO `json:"settings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		settings := settingsFromDTO(payload.Settings, DefaultGameSettings())
		controller.StartGame(settings)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.broadcastReset <- resetFromController(controller)
	})

	r.Post("/api/stop", func(w http.ResponseWriter, r *http.Request) {
		settings := controller.Settings()
		controller.Reset(settings)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.broadcastReset <- resetFromController(controller)
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload apiMove
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		applied, errMsg := controller.ApplyHumanMove(Move{X: payload.X, Y: payload.Y})
		if !applied {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
			return
		}
		if entry, ok := controller.LatestHistoryEntry(); ok {
			hub.broadcastHistory <- historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}}
		}
		hub.broadcastStatus <- controllerStatus(controller)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings *GameSettingsDTO `json:"settings"`
			Config   *Config          `json:"config"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if payload.Config != nil {
			if err := payload.Config.Validate(); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			configStore.Update(*payload.Config)
		}
		if payload.Settings != nil {
			settings := settingsFromDTO(*payload.Settings, controller.Settings())
			controller.UpdateSettings(settings)
		}
		hub.broadcastSettings <- settingsPayload{
			Settings: settingsToDTO(controller.Settings()),
			Config:   GetConfig(),
		}
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/arena", func(w http.ResponseWriter, r *http.Request) {
		settings := DefaultGameSettings()
		settings.Player1Type = PlayerAI
		settings.Player2Type = PlayerAI
		result := PlayMatch(NewAIPlayer(), NewAIPlayer(), settings)
		writeJSON(w, http.StatusOK, result)
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, w, r)
	})

	server := &http.Server{
		Addr:    ":" + GetConfig().ServerPort,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	logger.Infow("backend listening", "addr", server.Addr)
	select {
	case <-sigCtx.Done():
		logger.Infow("shutdown signal received")
	case err, ok := <-serverErrCh:
		if ok {
			logger.Errorw("server error", "error", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Errorw("graceful shutdown failed", "error", err)
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			logger.Errorw("forced close failed", "error", closeErr)
		}
	}
}

func serveWS(hub *Hub, controller *GameController, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)

	client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})

	go client.writePump(conn)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_status":
			client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})
		}
	}
}

func controllerStatus(controller *GameController) StatusResponse {
	state := controller.State()
	settings := controller.Settings()
	return StatusResponse{
		Settings:        settingsToDTO(settings),
		Config:          GetConfig(),
		Board:           boardGrid(state),
		NextPlayer:      playerToInt(state.ToMove),
		Winner:          winnerFromStatus(state.Status),
		BoardWidth:      state.Board.Width(),
		BoardHeight:     state.Board.Height(),
		Status:          statusToString(state.Status),
		WinReason:       controller.WinReason(),
		AiThinking:      controller.AiThinking(),
		History:         historyToDTO(controller.History()),
		TurnStartedAtMs: controller.TurnStartedAtMs(),
	}
}

// boardGrid flattens a state for the frontend: blocked cells keep value 3
// except the two cells the players currently stand on.
func boardGrid(state GameState) [][]int {
	grid := make([][]int, state.Board.Height())
	for y := range grid {
		row := make([]int, state.Board.Width())
		for x := range row {
			if state.Board.At(x, y) == CellBlocked {
				row[x] = cellValueBlocked
			} else {
				row[x] = cellValueEmpty
			}
		}
		grid[y] = row
	}
	for player, pos := range state.Positions {
		if pos.IsNoMove() {
			continue
		}
		grid[pos.Y][pos.X] = playerToInt(PlayerID(player))
	}
	return grid
}

func playerToInt(player PlayerID) int {
	if player == Player1 {
		return cellValuePlayer1
	}
	return cellValuePlayer2
}

func winnerFromStatus(status GameStatus) int {
	switch status {
	case StatusPlayer1Won:
		return cellValuePlayer1
	case StatusPlayer2Won:
		return cellValuePlayer2
	default:
		return 0
	}
}

func statusToString(status GameStatus) string {
	switch status {
	case StatusRunning:
		return "running"
	case StatusPlayer1Won, StatusPlayer2Won:
		return "finished"
	default:
		return "not_started"
	}
}

func settingsToDTO(settings GameSettings) GameSettingsDTO {
	dto := GameSettingsDTO{TurnTimeMs: settings.TurnTimeMs}
	switch {
	case settings.Player1Type == PlayerHuman && settings.Player2Type == PlayerAI:
		dto.Mode = "human_vs_ai"
		dto.HumanPlayer = cellValuePlayer1
	case settings.Player1Type == PlayerAI && settings.Player2Type == PlayerHuman:
		dto.Mode = "human_vs_ai"
		dto.HumanPlayer = cellValuePlayer2
	case settings.Player1Type == PlayerAI && settings.Player2Type == PlayerAI:
		dto.Mode = "ai_vs_ai"
	default:
		dto.Mode = "human_vs_human"
	}
	return dto
}

func settingsFromDTO(dto GameSettingsDTO, base GameSettings) GameSettings {
	settings := base
	if dto.TurnTimeMs > 0 {
		settings.TurnTimeMs = dto.TurnTimeMs
	}
	switch dto.Mode {
	case "ai_vs_ai":
		settings.Player1Type = PlayerAI
		settings.Player2Type = PlayerAI
	case "human_vs_human":
		settings.Player1Type = PlayerHuman
		settings.Player2Type = PlayerHuman
	case "human_vs_ai":
		if dto.HumanPlayer == cellValuePlayer2 {
			settings.Player1Type = PlayerAI
			settings.Player2Type = PlayerHuman
		} else {
			settings.Player1Type = PlayerHuman
			settings.Player2Type = PlayerAI
		}
	}
	return settings
}

func historyEntryToDTO(entry HistoryEntry) historyEntryDTO {
	return historyEntryDTO{
		X:         entry.Move.X,
		Y:         entry.Move.Y,
		Player:    playerToInt(entry.Player),
		ElapsedMs: entry.ElapsedMs,
		IsAi:      entry.IsAi,
	}
}

func historyToDTO(history MoveHistory) []historyEntryDTO {
	entries := history.All()
	dtos := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, historyEntryToDTO(entry))
	}
	return dtos
}

func resetFromController(controller *GameController) resetPayload {
	state := controller.State()
	return resetPayload{
		Board:           boardGrid(state),
		NextPlayer:      playerToInt(state.ToMove),
		Winner:          winnerFromStatus(state.Status),
		Status:          statusToString(state.Status),
		BoardWidth:      state.Board.Width(),
		BoardHeight:     state.Board.Height(),
		WinReason:       controller.WinReason(),
		TurnStartedAtMs: controller.TurnStartedAtMs(),
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
