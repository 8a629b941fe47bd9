package layer

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/katyo/brd2tpl/pkg/errors"
	"github.com/katyo/brd2tpl/pkg/sheet"
)

// recordingExporter returns an empty page and remembers every settings value.
type recordingExporter struct {
	calls []Settings
	err   error
}

func (e *recordingExporter) Export(_ context.Context, s Settings) (*sheet.Page, error) {
	e.calls = append(e.calls, s)
	if e.err != nil {
		return nil, e.err
	}
	return sheet.New(sheet.Box(0, 0, 100, 50)), nil
}

func TestRenderEnablesExactlyOneLayer(t *testing.T) {
	tests := []struct {
		spec  Spec
		color Color
		mode  Mode
	}{
		{Spec{Name: Outline}, Black, ModeFill},
		{Spec{Name: Outline, Outline: true, BorderWidth: 1.4}, Black, ModeOutline},
		{Spec{Name: TopCopper, Invert: true, Mirror: true}, White, ModeFill},
		{Spec{Name: Outline, Invert: true, Outline: true}, White, ModeOutline},
		{Spec{Name: Holes, HoleDiameter: 0.28}, Black, ModeFill},
	}

	for _, tt := range tests {
		t.Run(tt.spec.String(), func(t *testing.T) {
			exp := &recordingExporter{}
			r := NewRenderer(Horizon(), exp)

			out, err := r.Render(context.Background(), tt.spec)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if len(exp.calls) != 1 {
				t.Fatalf("exporter called %d times, want 1", len(exp.calls))
			}

			want, _ := Horizon().Lookup(tt.spec.Name)
			enabled := out.Settings.Enabled()
			if len(enabled) != 1 || enabled[0] != want.Index {
				t.Fatalf("Enabled() = %v, want [%d]", enabled, want.Index)
			}
			ls, _ := out.Settings.Layer(want.Index)
			if ls.Color != tt.color {
				t.Errorf("Color = %v, want %v", ls.Color, tt.color)
			}
			if ls.Mode != tt.mode {
				t.Errorf("Mode = %v, want %v", ls.Mode, tt.mode)
			}
			if out.Settings.Mirror != tt.spec.Mirror {
				t.Errorf("Mirror = %v, want %v", out.Settings.Mirror, tt.spec.Mirror)
			}
			if out.Settings.MinLineWidth != tt.spec.BorderWidth {
				t.Errorf("MinLineWidth = %v, want %v", out.Settings.MinLineWidth, tt.spec.BorderWidth)
			}
			if out.Settings.SetHolesSize != (tt.spec.HoleDiameter > 0) {
				t.Errorf("SetHolesSize = %v", out.Settings.SetHolesSize)
			}
			if len(out.Settings.Layers) != Horizon().Len() {
				t.Errorf("settings cover %d layers, want %d", len(out.Settings.Layers), Horizon().Len())
			}
			if out.Page == nil {
				t.Error("Page is nil")
			}
		})
	}
}

func TestDisabledLayersAreWhiteOutline(t *testing.T) {
	r := NewRenderer(Horizon(), &recordingExporter{})
	s, err := r.Settings(Spec{Name: TopCopper})
	if err != nil {
		t.Fatal(err)
	}
	for _, l := range Horizon().Layers() {
		if l.Name == TopCopper {
			continue
		}
		ls := s.Layers[l.Index]
		if ls.Enabled || ls.Color != White || ls.Mode != ModeOutline {
			t.Errorf("layer %s = %+v, want disabled white outline", l.Name, ls)
		}
	}
}

func TestRenderUnknownLayer(t *testing.T) {
	exp := &recordingExporter{}
	r := NewRenderer(Horizon(), exp)

	_, err := r.Render(context.Background(), Spec{Name: "TOP_GOLD"})
	if !errors.Is(err, errors.ErrCodeUnknownLayer) {
		t.Fatalf("Render() error = %v, want %s", err, errors.ErrCodeUnknownLayer)
	}
	if len(exp.calls) != 0 {
		t.Errorf("exporter called %d times for unknown layer", len(exp.calls))
	}
}

func TestRenderPropagatesExportError(t *testing.T) {
	cause := stderrors.New("backend crashed")
	r := NewRenderer(Horizon(), &recordingExporter{err: cause})

	_, err := r.Render(context.Background(), Spec{Name: TopCopper})
	if err != cause {
		t.Errorf("Render() error = %v, want the exporter error unchanged", err)
	}
}

func TestRenderDoesNotCache(t *testing.T) {
	exp := &recordingExporter{}
	r := NewRenderer(Horizon(), exp)
	spec := Spec{Name: BottomMask}

	for range 3 {
		if _, err := r.Render(context.Background(), spec); err != nil {
			t.Fatal(err)
		}
	}
	if len(exp.calls) != 3 {
		t.Errorf("exporter called %d times, want 3", len(exp.calls))
	}
}

func TestSettingsAreIndependent(t *testing.T) {
	exp := &recordingExporter{}
	r := NewRenderer(Horizon(), exp)

	first, _ := r.Render(context.Background(), Spec{Name: TopCopper})
	// an exporter scribbling over its input must not leak into later renders
	exp.calls[0].Layers[-100] = LayerSettings{Enabled: true}

	second, _ := r.Render(context.Background(), Spec{Name: TopMask})
	if got := second.Settings.Enabled(); len(got) != 1 || got[0] != 10 {
		t.Errorf("second render Enabled() = %v, want [10]", got)
	}
	if got := first.Settings.Enabled(); len(got) != 1 || got[0] != 0 {
		t.Errorf("first render Enabled() = %v, want [0]", got)
	}
}

func TestSpecString(t *testing.T) {
	tests := []struct {
		spec Spec
		want string
	}{
		{Spec{Name: Outline}, "L_OUTLINE"},
		{Spec{Name: TopCopper, Invert: true, Mirror: true}, "TOP_COPPER[invert,mirror]"},
		{Spec{Name: Outline, Outline: true, BorderWidth: 1.5}, "L_OUTLINE[outline,border=1.5pt]"},
	}
	for _, tt := range tests {
		if got := tt.spec.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestColorGray(t *testing.T) {
	if White.Gray() != sheet.White {
		t.Errorf("White.Gray() = %v", White.Gray())
	}
	if Black.Gray() != sheet.Black {
		t.Errorf("Black.Gray() = %v", Black.Gray())
	}
}
