package tui

import "testing"

func TestPageLayoutUpdate(t *testing.T) {
	cases := []struct {
		name           string
		width          int
		height         int
		viewportWidth  int
		viewportHeight int
		composerHeight int
		modalWidth     int
	}{
		{name: "narrow", width: 80, height: 24, viewportWidth: 76, viewportHeight: 11, composerHeight: 3, modalWidth: 76},
		{name: "wide", width: 200, height: 40, viewportWidth: 196, viewportHeight: 27, composerHeight: 3, modalWidth: 96},
		{name: "tiny", width: 30, height: 10, viewportWidth: 40, viewportHeight: 5, composerHeight: 3, modalWidth: 40},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			layout := newPageLayout()
			layout.Update(tc.width, tc.height)
			if layout.viewportWidth != tc.viewportWidth {
				t.Fatalf("viewport width mismatch: got %d want %d", layout.viewportWidth, tc.viewportWidth)
			}
			if layout.viewportHeight != tc.viewportHeight {
				t.Fatalf("viewport height mismatch: got %d want %d", layout.viewportHeight, tc.viewportHeight)
			}
			if layout.composerHeight != tc.composerHeight {
				t.Fatalf("composer height mismatch: got %d want %d", layout.composerHeight, tc.composerHeight)
			}
			if layout.modalWidth != tc.modalWidth {
				t.Fatalf("modal width mismatch: got %d want %d", layout.modalWidth, tc.modalWidth)
			}
		})
	}
}
