package world

import "github.com/sslteam/stp/geom"

// Field describes the playing area. The origin is the center point, the
// enemy goal is on the +x side.
type Field struct {
	Length       float64
	Width        float64
	DefenseDepth float64
	DefenseWidth float64
	GoalWidth    float64
	Boundary     float64
}

// DivisionB returns the dimensions of an SSL division B field.
func DivisionB() Field {
	return Field{
		Length:       9.0,
		Width:        6.0,
		DefenseDepth: 1.0,
		DefenseWidth: 2.0,
		GoalWidth:    1.0,
		Boundary:     0.3,
	}
}

func (f Field) XLength() float64 { return f.Length }
func (f Field) YLength() float64 { return f.Width }

func (f Field) Center() geom.Point { return geom.Point{} }

func (f Field) EnemyCornerPos() geom.Point { return geom.Pt(f.Length/2, f.Width/2) }
func (f Field) EnemyCornerNeg() geom.Point { return geom.Pt(f.Length/2, -f.Width/2) }

func (f Field) FriendlyCornerPos() geom.Point { return geom.Pt(-f.Length/2, f.Width/2) }
func (f Field) FriendlyCornerNeg() geom.Point { return geom.Pt(-f.Length/2, -f.Width/2) }

func (f Field) EnemyGoalCenter() geom.Point { return geom.Pt(f.Length/2, 0) }
func (f Field) FriendlyGoalCenter() geom.Point { return geom.Pt(-f.Length/2, 0) }

func (f Field) EnemyGoalpostPos() geom.Point { return geom.Pt(f.Length/2, f.GoalWidth/2) }
func (f Field) EnemyGoalpostNeg() geom.Point { return geom.Pt(f.Length/2, -f.GoalWidth/2) }

func (f Field) EnemyDefenseArea() geom.Rectangle {
	return geom.Rect(
		geom.Pt(f.Length/2-f.DefenseDepth, -f.DefenseWidth/2),
		geom.Pt(f.Length/2, f.DefenseWidth/2),
	)
}

func (f Field) FriendlyDefenseArea() geom.Rectangle {
	return geom.Rect(
		geom.Pt(-f.Length/2, -f.DefenseWidth/2),
		geom.Pt(-f.Length/2+f.DefenseDepth, f.DefenseWidth/2),
	)
}

// Lines is the playing area, excluding the boundary.
func (f Field) Lines() geom.Rectangle {
	return geom.Rect(f.FriendlyCornerNeg(), f.EnemyCornerPos())
}

func (f Field) Contains(p geom.Point) bool {
	return f.Lines().Contains(p)
}
