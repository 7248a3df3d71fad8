package ksi

import (
	"testing"

	"github.com/jacobf001/iceland-db/model"
)

func TestSelectTitle(t *testing.T) {
	tests := map[string]struct {
		html     string
		expected string
	}{
		"heading wins": {
			html:     `<html><body><h1>Úrslit</h1><h2>3. deild karla</h2></body></html>`,
			expected: "3. deild karla",
		},
		"division beats cup": {
			html:     `<html><body><h2>Mjólkurbikar kvenna</h2><h1>Besta deild kvenna</h1></body></html>`,
			expected: "Besta deild kvenna",
		},
		"navigation text penalized": {
			html:     `<html><body><strong>Smelltu hér til að skrá mig</strong><b>2. deild karla</b></body></html>`,
			expected: "2. deild karla",
		},
		"fallback to visible text": {
			html:     "<html><body><div>Lengjudeild karla\nEitthvað annað hér</div></body></html>",
			expected: "Lengjudeild karla",
		},
		"first seen wins ties": {
			html:     `<html><body><h1>Fyrsta mótið</h1><h2>Annað mótið</h2></body></html>`,
			expected: "Fyrsta mótið",
		},
		"nothing usable": {
			html:     `<html><body><h1>Hæ!</h1></body></html>`,
			expected: model.UnknownCompetition,
		},
		"deny list suppresses winner": {
			html:     `<html><body><h1>Standings</h1></body></html>`,
			expected: model.UnknownCompetition,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := SelectTitle(tc.html); got != tc.expected {
				t.Errorf("expected '%s', got '%s'", tc.expected, got)
			}
		})
	}
}

func TestScoreTitle(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		// deild + karla + numbered pattern + accented letters
		{input: "3. deild karla", expected: 60 + 50 + 40},
		{input: "Besta deild kvenna", expected: 50 + 40},
		{input: "Mjólkurbikar karla", expected: 25 + 40 + 5},
		{input: "A riðill", expected: 35 + 5},
		{input: "results", expected: -200},
		{input: "www.ksi.is/mot", expected: -50},
	}

	for _, tc := range tests {
		if got := ScoreTitle(tc.input); got != tc.expected {
			t.Errorf("input: '%s', expected score %d, got %d", tc.input, tc.expected, got)
		}
	}
}

func TestInferTier(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{input: "Besta deild karla", expected: 1},
		{input: "Úrvalsdeild kvenna", expected: 1},
		{input: "Lengjudeild karla", expected: 2},
		// KSÍ's numbering is offset one below the actual strength rank.
		{input: "1. deild kvenna", expected: 2},
		{input: "3. deild karla", expected: 4},
		// A cup never has a tier, even with a numbered pattern present.
		{input: "Mjólkurbikar 1. deild karla", expected: 0},
		{input: "Lengjubikarinn", expected: 0},
		{input: "Eitthvað allt annað", expected: 0},
	}

	for _, tc := range tests {
		if got := InferTier(tc.input); got != tc.expected {
			t.Errorf("input: '%s', expected tier %d, got %d", tc.input, tc.expected, got)
		}
	}
}

func TestGroupLabel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "2. deild kvenna - A riðill", expected: "A riðill"},
		{input: "4. deild karla b-riðill", expected: "B riðill"},
		{input: "C. riðill", expected: "C riðill"},
		{input: "Besta deild karla", expected: ""},
		{input: "", expected: ""},
	}

	for _, tc := range tests {
		if got := GroupLabel(tc.input); got != tc.expected {
			t.Errorf("input: '%s', expected '%s', got '%s'", tc.input, tc.expected, got)
		}
	}
}
