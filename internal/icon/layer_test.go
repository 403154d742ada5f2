package icon

import "testing"

// TestResolve_OverridePrecedence tests that per-size overrides win over the
// global attributes only at their own size.
func TestResolve_OverridePrecedence(t *testing.T) {
	layer := &Layer{
		Kind:     UserImage,
		Visible:  true,
		Opacity:  100,
		Position: Point{X: 10, Y: 10},
		Scale:    1.0,
		PositionBySize: map[Size]Point{
			32: {X: 50, Y: 50},
		},
	}

	at32 := Resolve(layer, 32)
	if at32.Position != (Point{X: 50, Y: 50}) {
		t.Errorf("Resolve at 32 position = %+v, want (50,50)", at32.Position)
	}

	at16 := Resolve(layer, 16)
	if at16.Position != (Point{X: 10, Y: 10}) {
		t.Errorf("Resolve at 16 position = %+v, want global (10,10)", at16.Position)
	}
}

// TestResolve_AllAttributes tests the full fallback chain for visibility,
// scale and image source.
func TestResolve_AllAttributes(t *testing.T) {
	src := []byte("global")
	src64 := []byte("sixty-four")
	layer := &Layer{
		Kind:          UserImage,
		Visible:       true,
		Scale:         1.0,
		Source:        src,
		VisibleBySize: map[Size]bool{16: false},
		ScaleBySize:   map[Size]float64{64: 0.5},
		SourceBySize:  map[Size][]byte{64: src64},
	}

	tests := []struct {
		size        Size
		wantVisible bool
		wantScale   float64
		wantSource  string
	}{
		{16, false, 1.0, "global"},
		{32, true, 1.0, "global"},
		{64, true, 0.5, "sixty-four"},
	}

	for _, tt := range tests {
		got := Resolve(layer, tt.size)
		if got.Visible != tt.wantVisible {
			t.Errorf("Resolve(%d).Visible = %v, want %v", tt.size, got.Visible, tt.wantVisible)
		}
		if got.Scale != tt.wantScale {
			t.Errorf("Resolve(%d).Scale = %v, want %v", tt.size, got.Scale, tt.wantScale)
		}
		if string(got.Source) != tt.wantSource {
			t.Errorf("Resolve(%d).Source = %q, want %q", tt.size, got.Source, tt.wantSource)
		}
	}
}

// TestResolve_FolderLayersIgnoreSources tests that folder layers never
// resolve an image source even when one is present.
func TestResolve_FolderLayersIgnoreSources(t *testing.T) {
	layer := &Layer{
		Kind:         FrontFolder,
		Visible:      true,
		Scale:        1.0,
		Source:       []byte("stray"),
		SourceBySize: map[Size][]byte{32: []byte("stray-32")},
	}
	if got := Resolve(layer, 32); got.Source != nil {
		t.Errorf("folder layer resolved source %q, want nil", got.Source)
	}
}

// TestResolve_DoesNotMutate tests that resolving never touches the layer.
func TestResolve_DoesNotMutate(t *testing.T) {
	layer := &Layer{
		Kind:        UserImage,
		Visible:     true,
		Position:    Point{X: 128, Y: 128},
		Scale:       1.0,
		ScaleBySize: map[Size]float64{16: 0.3},
	}
	before := *layer

	for _, size := range Sizes {
		Resolve(layer, size)
		Resolve(layer, size) // idempotent by construction, call twice anyway
	}

	if layer.Position != before.Position || layer.Scale != before.Scale || layer.Visible != before.Visible {
		t.Error("Resolve mutated the layer")
	}
}

// TestLayer_Validation tests range checking of the patch-style mutators.
func TestLayer_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Layer) error
		wantErr bool
	}{
		{"opacity low", func(l *Layer) error { return l.SetOpacity(-1) }, true},
		{"opacity high", func(l *Layer) error { return l.SetOpacity(101) }, true},
		{"opacity min", func(l *Layer) error { return l.SetOpacity(0) }, false},
		{"opacity max", func(l *Layer) error { return l.SetOpacity(100) }, false},
		{"scale low", func(l *Layer) error { return l.SetScale(0.05) }, true},
		{"scale high", func(l *Layer) error { return l.SetScale(2.5) }, true},
		{"scale min", func(l *Layer) error { return l.SetScale(0.1) }, false},
		{"scale max", func(l *Layer) error { return l.SetScale(2.0) }, false},
		{"scale at bad size", func(l *Layer) error { return l.SetScaleAt(48, 1.0) }, true},
		{"scale at good size", func(l *Layer) error { return l.SetScaleAt(64, 1.0) }, false},
		{"position at bad size", func(l *Layer) error { return l.SetPositionAt(100, Point{}) }, true},
		{"visible at good size", func(l *Layer) error { return l.SetVisibleAt(256, false) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Layer{Kind: UserImage, Scale: 1.0, Opacity: 100}
			err := tt.mutate(l)
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestLayer_RejectedMutationLeavesValueIntact tests that a failed patch
// does not change the layer.
func TestLayer_RejectedMutationLeavesValueIntact(t *testing.T) {
	l := &Layer{Kind: UserImage, Scale: 1.0, Opacity: 80}
	if err := l.SetOpacity(250); err == nil {
		t.Fatal("expected validation error")
	}
	if l.Opacity != 80 {
		t.Errorf("opacity changed to %d after rejected mutation", l.Opacity)
	}
	if err := l.SetScale(9.0); err == nil {
		t.Fatal("expected validation error")
	}
	if l.Scale != 1.0 {
		t.Errorf("scale changed to %v after rejected mutation", l.Scale)
	}
}

// TestLayer_CloneIsIndependent tests that mutating a clone's override maps
// never reaches the original layer.
func TestLayer_CloneIsIndependent(t *testing.T) {
	l := &Layer{Kind: UserImage, Visible: true, Opacity: 100, Scale: 1.0}
	if err := l.SetScaleAt(32, 0.5); err != nil {
		t.Fatal(err)
	}
	if err := l.SetVisibleAt(16, false); err != nil {
		t.Fatal(err)
	}

	c := l.Clone()
	if err := c.SetScaleAt(32, 1.5); err != nil {
		t.Fatal(err)
	}
	if err := c.SetPositionAt(64, Point{X: 10, Y: 10}); err != nil {
		t.Fatal(err)
	}
	c.Opacity = 40

	if l.ScaleBySize[32] != 0.5 {
		t.Errorf("original scale override = %v after clone mutation, want 0.5", l.ScaleBySize[32])
	}
	if _, ok := l.PositionBySize[64]; ok {
		t.Error("position override added to clone leaked into the original")
	}
	if l.Opacity != 100 {
		t.Errorf("original opacity = %d after clone mutation, want 100", l.Opacity)
	}
	if v, ok := c.VisibleBySize[16]; !ok || v {
		t.Error("clone dropped the original visibility override")
	}
}

// TestStack_Defaults tests the canonical three-layer stack.
func TestStack_Defaults(t *testing.T) {
	s := NewStack()
	if len(s.Layers) != 3 {
		t.Fatalf("default stack has %d layers, want 3", len(s.Layers))
	}

	wantOrders := map[Kind]int{BackFolder: 0, FrontFolder: 1, UserImage: 2}
	for kind, order := range wantOrders {
		l := s.ByKind(kind)
		if l == nil {
			t.Fatalf("missing %s layer", kind)
		}
		if l.Order != order {
			t.Errorf("%s order = %d, want %d", kind, l.Order, order)
		}
		if l.Position != (Point{X: 128, Y: 128}) {
			t.Errorf("%s position = %+v, want center", kind, l.Position)
		}
		if l.Scale != 1.0 {
			t.Errorf("%s scale = %v, want 1.0", kind, l.Scale)
		}
	}

	if s.ByKind(UserImage).Source != nil {
		t.Error("default user image layer should have no source")
	}
	if !s.ByKind(BackFolder).UseColor || !s.ByKind(FrontFolder).UseColor {
		t.Error("default folder layers should be colored")
	}
}

// TestStack_Swap tests that reordering swaps exactly the two order values.
func TestStack_Swap(t *testing.T) {
	s := NewStack()
	s.Swap(FrontFolder, UserImage)

	if got := s.ByKind(FrontFolder).Order; got != 2 {
		t.Errorf("front folder order = %d, want 2", got)
	}
	if got := s.ByKind(UserImage).Order; got != 1 {
		t.Errorf("user image order = %d, want 1", got)
	}
	if got := s.ByKind(BackFolder).Order; got != 0 {
		t.Errorf("back folder order = %d, want 0 (untouched)", got)
	}

	ordered := s.Ordered()
	wantKinds := []Kind{BackFolder, UserImage, FrontFolder}
	for i, k := range wantKinds {
		if ordered[i].Kind != k {
			t.Errorf("ordered[%d] = %s, want %s", i, ordered[i].Kind, k)
		}
	}
}
