// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/vec"
)

// parsePoint parses "X,Y" in document units.
func parsePoint(text string) (vec.Vec2, error) {
	xText, yText, ok := strings.Cut(text, ",")
	if !ok {
		return vec.Vec2{}, fmt.Errorf("point %q: want X,Y", text)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xText), 64)
	if err != nil {
		return vec.Vec2{}, fmt.Errorf("point %q: x: %w", text, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(yText), 64)
	if err != nil {
		return vec.Vec2{}, fmt.Errorf("point %q: y: %w", text, err)
	}
	return vec.Vec2{X: x, Y: y}, nil
}

func formatPoint(point vec.Vec2) string {
	return strconv.FormatFloat(point.X, 'f', 3, 64) + "," + strconv.FormatFloat(point.Y, 'f', 3, 64)
}
