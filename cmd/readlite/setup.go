package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/readlite/readlite/internal/config"
	"github.com/readlite/readlite/internal/home"
	"github.com/readlite/readlite/internal/providers"
)

// newLogger builds the process logger.
func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// setup resolves the home directory and loads configuration. Shared by every
// command that touches the pipeline.
func setup() (*home.Dir, *config.Config, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, nil, err
	}
	if err := h.EnsureExists(); err != nil {
		return nil, nil, err
	}

	file := cfgFile
	if file == "" && h.ConfigExists() {
		file = h.ConfigPath()
	}
	cm, err := config.NewManager(file)
	if err != nil {
		return nil, nil, err
	}
	return h, cm.Get(), nil
}

// newGenerator builds the configured text-generation client.
func newGenerator(cfg *config.Config) (providers.TextGenerator, string, error) {
	name := cfg.Defaults.LLMProvider
	pc, ok := cfg.GetLLMProvider(name)
	if !ok || !pc.Enabled {
		return nil, "", fmt.Errorf("llm provider %q is not configured or disabled", name)
	}

	switch pc.Type {
	case "openrouter":
		return providers.NewOpenRouterClient(providers.OpenRouterConfig{
			APIKey:            config.ResolveEnvVars(pc.APIKey),
			DefaultModel:      pc.Model,
			RequestsPerMinute: pc.RateLimit,
		}), pc.Model, nil
	default:
		return nil, "", fmt.Errorf("unknown llm provider type: %q", pc.Type)
	}
}

// newTTS builds the configured text-to-speech client.
func newTTS(cfg *config.Config) (providers.TTSProvider, error) {
	name := cfg.Defaults.TTSProvider
	pc, ok := cfg.GetTTSProvider(name)
	if !ok || !pc.Enabled {
		return nil, fmt.Errorf("tts provider %q is not configured or disabled", name)
	}

	switch pc.Type {
	case "openai":
		return providers.NewOpenAITTSClient(providers.OpenAITTSConfig{
			APIKey: config.ResolveEnvVars(pc.APIKey),
			Model:  pc.Model,
			Voice:  pc.Voice,
			Speed:  pc.Speed,
		}), nil
	default:
		return nil, fmt.Errorf("unknown tts provider type: %q", pc.Type)
	}
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the home directory and a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}
		if h.ConfigExists() {
			return fmt.Errorf("config already exists at %s", h.ConfigPath())
		}
		if err := config.WriteDefault(h.ConfigPath()); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", h.ConfigPath())
		return nil
	},
}
