// seehuhn.de/go/pdfview - support code for PDF viewers
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"os"
	"strconv"

	"seehuhn.de/go/pdfview/bufwrite"
)

// Backend names.
const (
	backendSeehuhn    = "seehuhn"
	backendLedongthuc = "ledongthuc"
)

// config holds the defaults for the command line flags.
type config struct {
	BufferSize int
	Backend    string
	DPI        float64
}

func loadConfig() config {
	cfg := config{
		BufferSize: envInt("PDFVIEW_BUFFER_SIZE", bufwrite.DefaultSize),
		Backend:    envOr("PDFVIEW_BACKEND", backendSeehuhn),
		DPI:        envFloat("PDFVIEW_DPI", 72),
	}

	if cfg.BufferSize <= 0 {
		cfg.BufferSize = bufwrite.DefaultSize
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 72
	}
	return cfg
}

func (c config) validate() error {
	switch c.Backend {
	case backendSeehuhn, backendLedongthuc:
		return nil
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if x, err := strconv.ParseFloat(v, 64); err == nil {
			return x
		}
	}
	return fallback
}
