// Package config holds the tunable parameters of the simulation and the
// server process, following the teacher's DefaultConfig/FastConfig pair.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds every tunable parameter of the board, the per-tick
// simulation, and the bonus subsystem.
type Config struct {
	// Board
	BoardSize    float64 `json:"boardSize"`
	AvatarRadius float64 `json:"avatarRadius"`

	// Timing
	TickRate        time.Duration `json:"tickRate"`        // fixed simulation Δt, default 1/60s
	BroadcastRateHz int           `json:"broadcastRateHz"` // decimated position broadcast rate

	// Round lifecycle
	WarmupDuration   time.Duration `json:"warmupDuration"`
	RoundEndDuration time.Duration `json:"roundEndDuration"`
	MaxRoundScore    int           `json:"maxRoundScore"`

	// Players & rooms
	MinPlayers      int           `json:"minPlayers"`
	MaxPlayers      int           `json:"maxPlayers"`
	SoloAllowed     bool          `json:"soloAllowed"`
	RoomNameMaxLen  int           `json:"roomNameMaxLen"`
	RoomIdleTimeout time.Duration `json:"roomIdleTimeout"`

	// Avatar kinematics
	BaseVelocity        float64 `json:"baseVelocity"`
	AngularVelocity     float64 `json:"angularVelocity"`
	MinPrintStep        float64 `json:"minPrintStep"`
	PrintInterval       int     `json:"printInterval"` // ticks; "printing" spans are drawn from [0.25,0.75]x this
	GapInterval         int     `json:"gapInterval"`   // ticks, mean gap duration
	TrailGraceBodies    int     `json:"trailGraceBodies"`
	PrintWidthFactor    float64 `json:"printWidthFactor"`

	// Bonuses
	BonusMinSpawnDelay time.Duration `json:"bonusMinSpawnDelay"`
	BonusMaxSpawnDelay time.Duration `json:"bonusMaxSpawnDelay"`
	BonusLifetime      time.Duration `json:"bonusLifetime"`
	BonusDuration      time.Duration `json:"bonusDuration"`
	BonusRadius        float64       `json:"bonusRadius"`

	// Network
	PingInterval  time.Duration `json:"pingInterval"`
	SessionDeadline time.Duration `json:"sessionDeadline"`
	AskTimeout    time.Duration `json:"askTimeout"`
}

// DefaultConfig returns the production-sized board and timings.
func DefaultConfig() Config {
	return Config{
		BoardSize:    100,
		AvatarRadius: 0.6,

		TickRate:        time.Second / 60,
		BroadcastRateHz: 20,

		WarmupDuration:   3 * time.Second,
		RoundEndDuration: 2 * time.Second,
		MaxRoundScore:    10,

		MinPlayers:      2,
		MaxPlayers:       6,
		SoloAllowed:      false,
		RoomNameMaxLen:   25,
		RoomIdleTimeout:  60 * time.Second,

		BaseVelocity:     15,
		AngularVelocity:  3.2,
		MinPrintStep:     0.4,
		PrintInterval:    150,
		GapInterval:      10,
		TrailGraceBodies: 6,
		PrintWidthFactor: 1.0,

		BonusMinSpawnDelay: 3 * time.Second,
		BonusMaxSpawnDelay: 10 * time.Second,
		BonusLifetime:      8 * time.Second,
		BonusDuration:      7500 * time.Millisecond,
		BonusRadius:        1.2,

		PingInterval:    time.Second,
		SessionDeadline: 2 * time.Second,
		AskTimeout:      2 * time.Second,
	}
}

// FastConfig returns a config with shorter timers and a smaller board, for
// tests that need rounds to resolve quickly and deterministically.
func FastConfig() Config {
	cfg := DefaultConfig()

	cfg.BoardSize = 20
	cfg.AvatarRadius = 0.3

	cfg.WarmupDuration = 10 * time.Millisecond
	cfg.RoundEndDuration = 10 * time.Millisecond
	cfg.MaxRoundScore = 2

	cfg.BonusMinSpawnDelay = 10 * time.Millisecond
	cfg.BonusMaxSpawnDelay = 20 * time.Millisecond
	cfg.BonusLifetime = 200 * time.Millisecond
	cfg.BonusDuration = 100 * time.Millisecond

	cfg.RoomIdleTimeout = 50 * time.Millisecond
	cfg.PingInterval = 20 * time.Millisecond
	cfg.SessionDeadline = 100 * time.Millisecond
	cfg.AskTimeout = 200 * time.Millisecond

	return cfg
}

// ProcessConfig is the handful of knobs read from the environment at
// startup: TCP port and the static web client directory.
type ProcessConfig struct {
	Port   string
	WebDir string
}

// LoadProcessConfig reads PORT and WEB_DIR from the environment, applying
// the defaults described in the external interface (§6): port 8080, and
// ./web as the web root.
func LoadProcessConfig() ProcessConfig {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if _, err := strconv.Atoi(port); err != nil {
		port = "8080"
	}

	webDir := os.Getenv("WEB_DIR")
	if webDir == "" {
		webDir = "./web"
	}

	return ProcessConfig{Port: port, WebDir: webDir}
}
