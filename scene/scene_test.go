package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestAddRemove(t *testing.T) {
	s := New()
	a := NewMesh(MeshSphere, mgl64.Vec3{1, 1, 1})
	b := NewMesh(MeshBox, mgl64.Vec3{0.5, 0.5, 0.5})
	c := NewMesh(MeshSphere, mgl64.Vec3{2, 2, 2})
	s.Add(a)
	s.Add(b)
	s.Add(c)

	if a.ID == b.ID || b.ID == c.ID {
		t.Errorf("Expected unique ids, got %d %d %d", a.ID, b.ID, c.ID)
	}

	if !s.Remove(b) {
		t.Fatal("Expected Remove to find mesh")
	}
	if s.Remove(b) {
		t.Error("Expected second Remove to report false")
	}

	got := s.Meshes()
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Errorf("Expected [a c] in order, got %v", got)
	}
	if s.Len() != 2 {
		t.Errorf("Expected Len 2, got %d", s.Len())
	}
}

func TestMeshesIsCopy(t *testing.T) {
	s := New()
	s.Add(NewMesh(MeshSphere, mgl64.Vec3{1, 1, 1}))
	got := s.Meshes()
	got[0] = nil
	if s.Meshes()[0] == nil {
		t.Error("Expected Meshes to return a copy")
	}
}

func TestDecayFlash(t *testing.T) {
	tests := []struct {
		name  string
		flash float64
		dt    float64
		want  float64
	}{
		{"partial", 0.2, 0.05, 0.15},
		{"expires", 0.1, 0.5, 0},
		{"idle", 0, 0.1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			m := NewMesh(MeshBox, mgl64.Vec3{1, 1, 1})
			m.Flash = tt.flash
			s.Add(m)
			s.DecayFlash(tt.dt)
			if diff := m.Flash - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Expected flash %.3f, got %.3f", tt.want, m.Flash)
			}
		})
	}
}
