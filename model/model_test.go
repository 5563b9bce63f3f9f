package model

import "testing"

func TestBBox_Dimensions(t *testing.T) {
	b := NewBBox(10, 20, 110, 50)

	if got := b.Width(); got != 100 {
		t.Errorf("Width() = %v, want 100", got)
	}
	if got := b.Height(); got != 30 {
		t.Errorf("Height() = %v, want 30", got)
	}
}

func TestBBox_Union(t *testing.T) {
	tests := []struct {
		name string
		a, b BBox
		want BBox
	}{
		{
			name: "disjoint boxes",
			a:    NewBBox(0, 0, 10, 10),
			b:    NewBBox(20, 20, 30, 30),
			want: NewBBox(0, 0, 30, 30),
		},
		{
			name: "contained box",
			a:    NewBBox(0, 0, 100, 100),
			b:    NewBBox(10, 10, 20, 20),
			want: NewBBox(0, 0, 100, 100),
		},
		{
			name: "zero left operand",
			a:    BBox{},
			b:    NewBBox(5, 5, 15, 15),
			want: NewBBox(5, 5, 15, 15),
		},
		{
			name: "zero right operand",
			a:    NewBBox(5, 5, 15, 15),
			b:    BBox{},
			want: NewBBox(5, 5, 15, 15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Union(tt.b); got != tt.want {
				t.Errorf("Union() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBBox_Intersects(t *testing.T) {
	a := NewBBox(0, 0, 10, 10)

	if !a.Intersects(NewBBox(5, 5, 15, 15)) {
		t.Error("overlapping boxes should intersect")
	}
	if a.Intersects(NewBBox(11, 11, 20, 20)) {
		t.Error("disjoint boxes should not intersect")
	}
}

func TestNode_Sanitized(t *testing.T) {
	tests := []struct {
		name           string
		node           Node
		wantConfidence float64
		wantHeight     float64
	}{
		{
			name:           "missing confidence defaults to 1.0",
			node:           Node{Confidence: ConfidenceUnknown, BBox: NewBBox(0, 10, 50, 22)},
			wantConfidence: 1.0,
			wantHeight:     12,
		},
		{
			name:           "out of range confidence clamped",
			node:           Node{Confidence: 1.7, BBox: NewBBox(0, 10, 50, 22)},
			wantConfidence: 1.0,
			wantHeight:     12,
		},
		{
			name:           "valid node unchanged",
			node:           Node{Confidence: 0.85, BBox: NewBBox(0, 10, 50, 22)},
			wantConfidence: 0.85,
			wantHeight:     12,
		},
		{
			name:           "zero bbox gets nominal height",
			node:           Node{Confidence: 0.5},
			wantConfidence: 0.5,
			wantHeight:     DefaultBBoxHeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.node.Sanitized()
			if got.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
			if h := got.BBox.Height(); h != tt.wantHeight {
				t.Errorf("BBox.Height() = %v, want %v", h, tt.wantHeight)
			}
		})
	}
}

func TestNode_IsHeading(t *testing.T) {
	if !(Node{ContentType: ContentHeading}).IsHeading() {
		t.Error("heading node should report IsHeading")
	}
	if (Node{ContentType: ContentParagraph}).IsHeading() {
		t.Error("paragraph node should not report IsHeading")
	}
}
