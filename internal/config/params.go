package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/banshee-data/arena.observer/internal/arena/geom"
	"github.com/banshee-data/arena.observer/internal/arena/raycast"
	"github.com/banshee-data/arena.observer/internal/arena/scene"
)

// DefaultConfigPath is the path to the canonical parameter defaults file.
const DefaultConfigPath = "config/params.defaults.yaml"

// ErrInvalidParams is returned by Validate.
var ErrInvalidParams = errors.New("invalid parameters")

// Point is an [x, y] pair in image pixels.
type Point [2]float64

// Params is the root configuration, sectioned like params.yaml. Every
// scalar is optional; the Get* methods supply defaults.
type Params struct {
	ImageProcessing ImageProcessing `yaml:"image_processing" json:"image_processing"`
	Arena           Arena           `yaml:"arena" json:"arena"`
	Robot           Robot           `yaml:"robot" json:"robot"`
	Capture         Capture         `yaml:"capture" json:"capture"`
	BrainServer     BrainServer     `yaml:"brain_server" json:"brain_server"`
	Recorder        Recorder        `yaml:"recorder" json:"recorder"`
}

// ImageProcessing holds the ray sensor parameters.
type ImageProcessing struct {
	RayLength         *float64 `yaml:"ray_length,omitempty" json:"ray_length,omitempty"`
	RayWidth          *float64 `yaml:"ray_width,omitempty" json:"ray_width,omitempty"`
	FrontRayWidth     *float64 `yaml:"front_ray_width,omitempty" json:"front_ray_width,omitempty"`
	MaxAnglePerSide   *float64 `yaml:"max_angle_per_side,omitempty" json:"max_angle_per_side,omitempty"` // degrees
	RaysPerSide       *int     `yaml:"number_of_rays_per_side,omitempty" json:"number_of_rays_per_side,omitempty"`
	BallRadius        *float64 `yaml:"ball_radius,omitempty" json:"ball_radius,omitempty"`
	HitDistanceOffset *float64 `yaml:"hit_distance_offset,omitempty" json:"hit_distance_offset,omitempty"`
}

// Arena holds the static geometry as image-space line chains.
type Arena struct {
	Walls        [][]Point `yaml:"walls,omitempty" json:"walls,omitempty"`
	FriendlyGoal []Point   `yaml:"friendly_goal,omitempty" json:"friendly_goal,omitempty"`
	EnemyGoal    []Point   `yaml:"enemy_goal,omitempty" json:"enemy_goal,omitempty"`
}

// Robot holds the robot body half extents.
type Robot struct {
	HalfWidth  *float64 `yaml:"half_width,omitempty" json:"half_width,omitempty"`
	HalfLength *float64 `yaml:"half_length,omitempty" json:"half_length,omitempty"`
}

// Capture holds the camera image size.
type Capture struct {
	Width  *int `yaml:"width,omitempty" json:"width,omitempty"`
	Height *int `yaml:"height,omitempty" json:"height,omitempty"`
}

// BrainServer holds the policy server address.
type BrainServer struct {
	IP      *string `yaml:"ip,omitempty" json:"ip,omitempty"`
	Port    *int    `yaml:"port,omitempty" json:"port,omitempty"`
	Timeout *string `yaml:"timeout,omitempty" json:"timeout,omitempty"` // duration string like "2s"
}

// Recorder holds the session database location. An empty path disables
// recording.
type Recorder struct {
	Path *string `yaml:"path,omitempty" json:"path,omitempty"`
}

// Load reads parameters from a .yaml, .yml or .json file under 1 MB.
// Omitted fields keep their defaults, so partial files are safe.
func Load(path string) (*Params, error) {
	cleanPath := filepath.Clean(path)
	ext := filepath.Ext(cleanPath)
	if ext != ".yaml" && ext != ".yml" && ext != ".json" {
		return nil, fmt.Errorf("config file must have .yaml, .yml or .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	p := &Params{}
	if ext == ".json" {
		err = json.Unmarshal(data, p)
	} else {
		err = yaml.Unmarshal(data, p)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filepath.Base(cleanPath), err)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return p, nil
}

// MustLoadDefault loads DefaultConfigPath, searching parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefault() *Params {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // from internal/arena/*/
	}
	for _, path := range candidates {
		if p, err := Load(path); err == nil {
			return p
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks the values that are set, in file order, and reports the
// first violation. ball_radius must be positive: an energy core is a disc.
func (p *Params) Validate() error {
	ip := p.ImageProcessing
	positive := []struct {
		name string
		v    *float64
	}{
		{"ray_length", ip.RayLength},
		{"ray_width", ip.RayWidth},
		{"front_ray_width", ip.FrontRayWidth},
		{"ball_radius", ip.BallRadius},
		{"robot.half_width", p.Robot.HalfWidth},
		{"robot.half_length", p.Robot.HalfLength},
	}
	for _, f := range positive {
		if f.v != nil && !(*f.v > 0) {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidParams, f.name, *f.v)
		}
	}
	if v := ip.MaxAnglePerSide; v != nil && (!(*v > 0) || *v > 180) {
		return fmt.Errorf("%w: max_angle_per_side must be in (0, 180] degrees, got %g", ErrInvalidParams, *v)
	}
	if v := ip.RaysPerSide; v != nil && *v < 1 {
		return fmt.Errorf("%w: number_of_rays_per_side must be >= 1, got %d", ErrInvalidParams, *v)
	}
	if v := ip.HitDistanceOffset; v != nil && (*v < 0 || *v >= 1) {
		return fmt.Errorf("%w: hit_distance_offset must be in [0, 1), got %g", ErrInvalidParams, *v)
	}
	if v := p.Capture.Width; v != nil && *v <= 0 {
		return fmt.Errorf("%w: capture.width must be positive, got %d", ErrInvalidParams, *v)
	}
	if v := p.Capture.Height; v != nil && *v <= 0 {
		return fmt.Errorf("%w: capture.height must be positive, got %d", ErrInvalidParams, *v)
	}
	if v := p.BrainServer.Port; v != nil && (*v <= 0 || *v > 65535) {
		return fmt.Errorf("%w: brain_server.port out of range: %d", ErrInvalidParams, *v)
	}
	if v := p.BrainServer.Timeout; v != nil && *v != "" {
		if _, err := time.ParseDuration(*v); err != nil {
			return fmt.Errorf("%w: invalid brain_server.timeout '%s': %v", ErrInvalidParams, *v, err)
		}
	}
	for i, w := range p.Arena.Walls {
		if len(w) < 2 {
			return fmt.Errorf("%w: arena.walls[%d] needs at least 2 points, got %d", ErrInvalidParams, i, len(w))
		}
	}
	return nil
}

// GetRayLength returns ray_length or the default.
func (p *Params) GetRayLength() float64 {
	if p.ImageProcessing.RayLength == nil {
		return 600 // default
	}
	return *p.ImageProcessing.RayLength
}

// GetRayWidth returns ray_width or the default.
func (p *Params) GetRayWidth() float64 {
	if p.ImageProcessing.RayWidth == nil {
		return 8 // default
	}
	return *p.ImageProcessing.RayWidth
}

// GetFrontRayWidth returns front_ray_width or the default.
func (p *Params) GetFrontRayWidth() float64 {
	if p.ImageProcessing.FrontRayWidth == nil {
		return 16 // default
	}
	return *p.ImageProcessing.FrontRayWidth
}

// GetMaxAnglePerSide returns max_angle_per_side in degrees or the default.
func (p *Params) GetMaxAnglePerSide() float64 {
	if p.ImageProcessing.MaxAnglePerSide == nil {
		return 90 // default
	}
	return *p.ImageProcessing.MaxAnglePerSide
}

// GetRaysPerSide returns number_of_rays_per_side or the default.
func (p *Params) GetRaysPerSide() int {
	if p.ImageProcessing.RaysPerSide == nil {
		return 4 // default
	}
	return *p.ImageProcessing.RaysPerSide
}

// GetBallRadius returns ball_radius or the default.
func (p *Params) GetBallRadius() float64 {
	if p.ImageProcessing.BallRadius == nil {
		return 10 // default
	}
	return *p.ImageProcessing.BallRadius
}

// GetHitDistanceOffset returns hit_distance_offset or the default.
func (p *Params) GetHitDistanceOffset() float64 {
	if p.ImageProcessing.HitDistanceOffset == nil {
		return 0 // default
	}
	return *p.ImageProcessing.HitDistanceOffset
}

// GetRobotHalfExtents returns the robot body half width and half length.
func (p *Params) GetRobotHalfExtents() (halfWidth, halfLength float64) {
	halfWidth, halfLength = 35, 45 // defaults
	if p.Robot.HalfWidth != nil {
		halfWidth = *p.Robot.HalfWidth
	}
	if p.Robot.HalfLength != nil {
		halfLength = *p.Robot.HalfLength
	}
	return halfWidth, halfLength
}

// GetImageFrame returns the capture size as an image frame.
func (p *Params) GetImageFrame() scene.ImageFrame {
	w, h := 1280, 720 // defaults
	if p.Capture.Width != nil {
		w = *p.Capture.Width
	}
	if p.Capture.Height != nil {
		h = *p.Capture.Height
	}
	return scene.ImageFrame{Width: float64(w), Height: float64(h)}
}

// GetBrainTimeout parses brain_server.timeout.
func (p *Params) GetBrainTimeout() time.Duration {
	if p.BrainServer.Timeout == nil || *p.BrainServer.Timeout == "" {
		return 2 * time.Second // default
	}
	d, err := time.ParseDuration(*p.BrainServer.Timeout)
	if err != nil {
		return 2 * time.Second // default on parse error
	}
	return d
}

// BrainTarget returns the host:port of the policy server.
func (p *Params) BrainTarget() string {
	ip, port := "localhost", 50052 // defaults
	if p.BrainServer.IP != nil && *p.BrainServer.IP != "" {
		ip = *p.BrainServer.IP
	}
	if p.BrainServer.Port != nil {
		port = *p.BrainServer.Port
	}
	return net.JoinHostPort(ip, strconv.Itoa(port))
}

// GetRecorderPath returns the recorder database path; empty disables it.
func (p *Params) GetRecorderPath() string {
	if p.Recorder.Path == nil {
		return ""
	}
	return *p.Recorder.Path
}

// RaycastConfig converts the sensor parameters, degrees to radians.
func (p *Params) RaycastConfig() raycast.Config {
	return raycast.Config{
		MaxAnglePerSide: p.GetMaxAnglePerSide() * math.Pi / 180,
		RaysPerSide:     p.GetRaysPerSide(),
		RayLength:       p.GetRayLength(),
		RayWidth:        p.GetRayWidth(),
		FrontRayWidth:   p.GetFrontRayWidth(),
		HitOffset:       p.GetHitDistanceOffset(),
	}
}

// BuildModel creates the scene model: walls and goals as static line
// chains, robots as rectangles and energy cores as discs.
func (p *Params) BuildModel() (*scene.Model, error) {
	hw, hl := p.GetRobotHalfExtents()
	body, err := geom.Rect(hw, hl)
	if err != nil {
		return nil, fmt.Errorf("robot body: %w", err)
	}
	core, err := geom.NewDisc(geom.V(0, 0), p.GetBallRadius())
	if err != nil {
		return nil, fmt.Errorf("energy core: %w", err)
	}
	m, err := scene.NewModel(
		scene.PoolSpec{Category: scene.FriendlyRobot, Template: body},
		scene.PoolSpec{Category: scene.EnemyRobot, Template: body},
		scene.PoolSpec{Category: scene.PositiveCore, Template: core},
		scene.PoolSpec{Category: scene.NegativeCore, Template: core},
	)
	if err != nil {
		return nil, err
	}

	img := p.GetImageFrame()
	chain := func(c scene.Category, pts []Point) error {
		if len(pts) == 0 {
			return nil
		}
		coords := make([][2]float64, len(pts))
		for i, pt := range pts {
			coords[i] = pt
		}
		shape, err := geom.NewLineChain(img.Points(coords))
		if err != nil {
			return fmt.Errorf("%v: %w", c, err)
		}
		_, err = m.CreateStatic(c, shape)
		return err
	}
	for i, w := range p.Arena.Walls {
		if err := chain(scene.Wall, w); err != nil {
			return nil, fmt.Errorf("arena.walls[%d]: %w", i, err)
		}
	}
	if err := chain(scene.FriendlyGoal, p.Arena.FriendlyGoal); err != nil {
		return nil, fmt.Errorf("arena.friendly_goal: %w", err)
	}
	if err := chain(scene.EnemyGoal, p.Arena.EnemyGoal); err != nil {
		return nil, fmt.Errorf("arena.enemy_goal: %w", err)
	}
	return m, nil
}
