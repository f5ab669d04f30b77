package perception

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// MediaPipeProvider implements Provider using a Python MediaPipe subprocess
// running the face-mesh and hand-landmarker solutions.
type MediaPipeProvider struct {
	config    Config
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdout    *bufio.Reader
	mu        sync.Mutex
	started   bool
	lastUsed  time.Time
	idleTimer *time.Timer
}

// NewMediaPipeProvider creates a new MediaPipe provider.
// The Python process is started lazily on the first observation.
func NewMediaPipeProvider(config Config) (*MediaPipeProvider, error) {
	scriptPath := findPerceptionScript()
	if scriptPath == "" {
		return nil, fmt.Errorf("perception_service.py not found")
	}

	return &MediaPipeProvider{
		config: config,
	}, nil
}

// Observe analyzes a frame and returns the face/hand observation.
func (p *MediaPipeProvider) Observe(frame *gocv.Mat) (*Observation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureStarted(); err != nil {
		return nil, err
	}

	// Encode frame as JPEG
	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	data := buf.GetBytes()

	// Write length (4 bytes big-endian) + data
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))

	if _, err := p.stdin.Write(length); err != nil {
		return nil, fmt.Errorf("write length: %w", err)
	}
	if _, err := p.stdin.Write(data); err != nil {
		return nil, fmt.Errorf("write data: %w", err)
	}

	// Read JSON response
	line, err := p.stdout.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var response jsonObservation
	if err := json.Unmarshal([]byte(line), &response); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	p.lastUsed = time.Now()
	p.resetIdleTimer()

	return response.toObservation(), nil
}

// Close shuts down the Python process.
func (p *MediaPipeProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shutdown()
}

func (p *MediaPipeProvider) ensureStarted() error {
	if p.started {
		return nil
	}

	scriptPath := findPerceptionScript()
	if scriptPath == "" {
		return fmt.Errorf("perception_service.py not found")
	}

	// Use virtual environment Python if available
	pythonPath := findVenvPython()
	if pythonPath == "" {
		pythonPath = "python3"
	}

	p.cmd = exec.Command(pythonPath, scriptPath)

	stdin, err := p.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}

	stdout, err := p.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}

	// Capture stderr for debugging
	p.cmd.Stderr = os.Stderr

	if err := p.cmd.Start(); err != nil {
		return fmt.Errorf("start perception service: %w", err)
	}

	p.stdin = stdin
	p.stdout = bufio.NewReader(stdout)
	p.started = true
	p.lastUsed = time.Now()

	return nil
}

func (p *MediaPipeProvider) shutdown() error {
	if !p.started {
		return nil
	}

	if p.idleTimer != nil {
		p.idleTimer.Stop()
		p.idleTimer = nil
	}

	if p.stdin != nil {
		p.stdin.Close()
	}

	err := p.cmd.Wait()
	p.started = false
	p.cmd = nil
	p.stdin = nil
	p.stdout = nil

	return err
}

func (p *MediaPipeProvider) resetIdleTimer() {
	if p.idleTimer != nil {
		p.idleTimer.Stop()
	}
	p.idleTimer = time.AfterFunc(30*time.Second, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.shutdown()
	})
}

func findPerceptionScript() string {
	// Get executable directory
	execPath, err := os.Executable()
	var execDir string
	if err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		"scripts/perception_service.py",
		"../scripts/perception_service.py",
		filepath.Join(execDir, "scripts/perception_service.py"),
		filepath.Join(os.Getenv("HOME"), ".drishti/scripts/perception_service.py"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				return absPath
			}
			return path
		}
	}
	return ""
}

// findVenvPython looks for a Python interpreter in a virtual environment.
// It checks for venv/bin/python relative to the project directory.
func findVenvPython() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	execDir := filepath.Dir(execPath)

	candidates := []string{
		"venv/bin/python",
		"../venv/bin/python",
		"../../venv/bin/python",
		filepath.Join(execDir, "venv/bin/python"),
		filepath.Join(os.Getenv("HOME"), ".drishti/venv/bin/python"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				return absPath
			}
			return path
		}
	}
	return ""
}

// jsonObservation is the JSON structure from the Python service.
type jsonObservation struct {
	Face *struct {
		Yaw       float64 `json:"yaw"`
		Pitch     float64 `json:"pitch"`
		Roll      float64 `json:"roll"`
		PositionX float64 `json:"position_x"`
	} `json:"face"`
	Hands []jsonHand `json:"hands"`
}

type jsonHand struct {
	Points     []jsonPoint `json:"points"`
	Handedness string      `json:"handedness"`
	Score      float64     `json:"score"`
}

type jsonPoint struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"`
}

func (o jsonObservation) toObservation() *Observation {
	obs := &Observation{}

	if o.Face != nil {
		obs.FaceVisible = true
		obs.HeadPose = HeadPose{Yaw: o.Face.Yaw, Pitch: o.Face.Pitch, Roll: o.Face.Roll}
		obs.FacePositionX = o.Face.PositionX
	}

	for _, h := range o.Hands {
		hand := Hand{
			Handedness: h.Handedness,
			Score:      h.Score,
		}
		for i := 0; i < NumLandmarks && i < len(h.Points); i++ {
			hand.Points[i] = Landmark{
				X:          h.Points[i].X,
				Y:          h.Points[i].Y,
				Confidence: h.Points[i].Confidence,
			}
		}
		obs.Hands = append(obs.Hands, hand)
	}

	return obs
}
