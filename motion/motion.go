// Package motion 收集指针驱动的装饰性变换：给定指针位置与元素几何，
// 计算倾斜、视差位移、光标尺寸与粒子受力。全部是纯函数，每帧重新计算。
package motion

import "math"

type Point struct {
	X, Y float64
}

type Rect struct {
	Left, Top, Width, Height float64
}

// Contains 判断点是否落在矩形内（含边界）。
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Left+r.Width &&
		p.Y >= r.Top && p.Y <= r.Top+r.Height
}

func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}
}

func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Rotation 以角度表示卡片绕 X/Y 轴的倾斜。
type Rotation struct {
	X, Y float64
}

const (
	settleFactor    = 0.9
	settleThreshold = 0.1
)

// Tilt 计算指针在卡片内时的倾斜：偏离中心越远倾斜越大，边缘为 maxDeg。
// 指针不在卡片内时返回 ok=false，调用方应改用 Settle 回正。
func Tilt(p Point, r Rect, maxDeg float64) (Rotation, bool) {
	if r.Empty() || !r.Contains(p) {
		return Rotation{}, false
	}
	cx, cy := r.Width/2, r.Height/2
	x, y := p.X-r.Left, p.Y-r.Top
	return Rotation{
		X: -((y - cy) / cy) * maxDeg,
		Y: ((x - cx) / cx) * maxDeg,
	}, true
}

// Settle 让倾斜逐帧衰减，绝对值小于阈值时归零。
func Settle(rot Rotation) Rotation {
	return Rotation{X: settleAxis(rot.X), Y: settleAxis(rot.Y)}
}

func settleAxis(v float64) float64 {
	v *= settleFactor
	if math.Abs(v) < settleThreshold {
		return 0
	}
	return v
}

// Offset 返回视差位移：指针相对元素中心的偏移乘以 factor。
// 负 factor 让元素背离指针移动。
func Offset(p Point, r Rect, factor float64) Point {
	c := r.Center()
	return Point{X: (p.X - c.X) * factor, Y: (p.Y - c.Y) * factor}
}

// Falloff 在 radius 内线性衰减：距离 0 时为 1，到达 radius 及以外为 0。
func Falloff(distance, radius float64) float64 {
	if radius <= 0 || distance >= radius {
		return 0
	}
	if distance <= 0 {
		return 1
	}
	return (radius - distance) / radius
}

// Variant 是自定义光标的形态。
type Variant string

const (
	VariantDefault Variant = "default"
	VariantText    Variant = "text"
	VariantButton  Variant = "button"
)

var cursorSizes = map[Variant]float64{
	VariantDefault: 32,
	VariantText:    80,
	VariantButton:  60,
}

// Circle 是以左上角定位的圆形光标。
type Circle struct {
	X, Y, Size float64
}

// CursorFor 返回以指针为中心的光标圆，未知形态按 default 处理。
func CursorFor(v Variant, p Point) Circle {
	size, ok := cursorSizes[v]
	if !ok {
		size = cursorSizes[VariantDefault]
	}
	return Circle{X: p.X - size/2, Y: p.Y - size/2, Size: size}
}

// Particle 是背景粒子的一帧状态。
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64
}

const (
	repelStrength = 0.5
	friction      = 0.99
	bounceDamping = 0.5
)

// Repel 推进粒子一帧：radius 内受指针斥力，碰到 bounds 边界反弹，速度带摩擦。
// 返回的 alive 为 false 时粒子寿命耗尽，调用方负责重新生成。
func Repel(pt Particle, pointer Point, radius float64, bounds Rect) (next Particle, alive bool) {
	dx, dy := pt.X-pointer.X, pt.Y-pointer.Y
	dist := math.Hypot(dx, dy)
	norm := dist
	if norm == 0 {
		norm = 1
	}

	vx, vy := pt.VX, pt.VY
	if f := Falloff(dist, radius); f > 0 {
		vx += dx / norm * f * repelStrength
		vy += dy / norm * f * repelStrength
	}

	x, y := pt.X+vx, pt.Y+vy
	if x < bounds.Left || x > bounds.Left+bounds.Width {
		x = pt.X
		vx = -vx * bounceDamping
	}
	if y < bounds.Top || y > bounds.Top+bounds.Height {
		y = pt.Y
		vy = -vy * bounceDamping
	}

	life := pt.Life - 1
	if life <= 0 {
		return Particle{}, false
	}
	return Particle{X: x, Y: y, VX: vx * friction, VY: vy * friction, Life: life}, true
}

// GradientCenter 把归一化指针位置（-1..1）映射为径向渐变中心的百分比坐标。
func GradientCenter(norm Point, spread float64) Point {
	return Point{X: 50 + norm.X*spread, Y: 50 + norm.Y*spread}
}
