package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	config "github.com/edward-ap/miniticker/internal/config"
	term "github.com/edward-ap/miniticker/internal/term"
	ticker "github.com/edward-ap/miniticker/internal/ticker"
)

func main() {
	text := flag.String("text", "", "text to scroll (defaults to the settings file)")
	duration := flag.Duration("duration", 0, "time for one pass, e.g. 6s (defaults to the settings file)")
	width := flag.Int("width", 60, "viewport width in cells")
	cfgPath := flag.String("config", "", "settings file (defaults to the user config dir)")
	trace := flag.Bool("traceLog", false, "log every ticker state change to termticker.log")
	flag.Parse()

	if *trace {
		f, err := tea.LogToFile("termticker.log", "termticker")
		if err != nil {
			fmt.Fprintln(os.Stderr, "trace log:", err)
			os.Exit(1)
		}
		defer f.Close()
		ticker.SetTraceLoggingEnabled(true)
	} else {
		// the terminal belongs to bubbletea; stray log lines would tear the view
		log.SetOutput(io.Discard)
	}

	store, err := openStore(*cfgPath)
	if err != nil {
		log.Println("config load error:", err)
	}
	s := settingsOf(store)

	cfg := s.TickerConfig()
	if *duration > 0 {
		cfg.Duration = *duration
	}
	msg := s.Text
	if strings.TrimSpace(*text) != "" {
		msg = *text
	}

	p := tea.NewProgram(term.New(msg, cfg, *width))
	if store != nil {
		store.Watch(func(patch ticker.PartialConfig, next config.Settings) {
			// flags pin what they set
			if *duration > 0 {
				patch.Duration = nil
			}
			body := next.Text
			if strings.TrimSpace(*text) != "" {
				body = *text
			}
			p.Send(term.ReloadMsg{Patch: patch, Text: body})
		})
	}
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "termticker:", err)
		os.Exit(1)
	}
}

func openStore(path string) (*config.Store, error) {
	if path == "" {
		return config.Load()
	}
	return config.Open(path)
}

func settingsOf(store *config.Store) config.Settings {
	if store != nil {
		return store.Settings()
	}
	def := ticker.DefaultConfig()
	return config.Settings{
		Duration: def.Duration,
		AutoFit:  def.AutoFitText,
		FontSize: def.FontSize,
		Color:    config.DefaultColor,
		Text:     config.DefaultText,
	}
}
