package physics

import (
	"image/color"

	"github.com/ByteArena/box2d"

	"physbody-engine/internal/render"
)

// drawDebug outlines every fixture of every body in pixel space.
func (m *Module) drawDebug(out render.Sink) {
	for _, id := range m.order {
		body := m.bodies[id].body
		for f := body.GetFixtureList(); f != nil; f = f.GetNext() {
			switch s := f.GetShape().(type) {
			case *box2d.B2CircleShape:
				c := m.scale.VecToPixels(fromB2(body.GetWorldPoint(s.M_p)))
				out.DrawCircle(float32(c.X), float32(c.Y), float32(m.scale.UnitsToPixels(s.M_radius)), render.CircleColor)
			case *box2d.B2PolygonShape:
				m.drawLoop(out, body, s.M_vertices[:s.M_count], render.PolygonColor)
			case *box2d.B2ChainShape:
				// A loop stores its first vertex again at the end.
				verts := s.M_vertices
				if s.M_count > 1 && len(verts) >= s.M_count {
					m.drawStrip(out, body, verts[:s.M_count], render.ChainColor)
				}
			case *box2d.B2EdgeShape:
				m.drawStrip(out, body, []box2d.B2Vec2{s.M_vertex1, s.M_vertex2}, render.EdgeColor)
			}
		}
	}
}

func (m *Module) drawLoop(out render.Sink, body *box2d.B2Body, local []box2d.B2Vec2, c color.RGBA) {
	if len(local) < 2 {
		return
	}
	closed := append(append([]box2d.B2Vec2(nil), local...), local[0])
	m.drawStrip(out, body, closed, c)
}

func (m *Module) drawStrip(out render.Sink, body *box2d.B2Body, local []box2d.B2Vec2, c color.RGBA) {
	for i := 0; i+1 < len(local); i++ {
		a := m.scale.VecToPixels(fromB2(body.GetWorldPoint(local[i])))
		b := m.scale.VecToPixels(fromB2(body.GetWorldPoint(local[i+1])))
		out.DrawLine(float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), c)
	}
}
