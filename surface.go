package conifer

// Surface receives drawing commands from a Generator. Implementations live in
// the raster, svgcanvas and window packages; Recorder keeps them in memory.
type Surface interface {
	Clear(c Color)
	SetStrokeColor(c Color)
	SetStrokeWidth(w float64)
	DrawLine(x0, y0, x1, y1 float64)
}

// CommandType identifies the kind of recorded command.
type CommandType uint8

const (
	CommandClear       CommandType = iota // fill the surface with Color
	CommandStrokeColor                    // set the stroke color
	CommandStrokeWidth                    // set the stroke width
	CommandLine                           // stroke a segment with the current state
)

// Command is a single recorded draw instruction.
type Command struct {
	Type  CommandType
	Color Color
	Width float64
	From  Vec2
	To    Vec2
}

// Segment is a recorded line with the stroke state in effect when it was drawn.
type Segment struct {
	From, To Vec2
	Color    Color
	Width    float64
}

// Recorder is a Surface that stores every command in order.
type Recorder struct {
	commands []Command
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{commands: make([]Command, 0, 1024)}
}

func (r *Recorder) Clear(c Color) {
	r.commands = append(r.commands, Command{Type: CommandClear, Color: c})
}

func (r *Recorder) SetStrokeColor(c Color) {
	r.commands = append(r.commands, Command{Type: CommandStrokeColor, Color: c})
}

func (r *Recorder) SetStrokeWidth(w float64) {
	r.commands = append(r.commands, Command{Type: CommandStrokeWidth, Width: w})
}

func (r *Recorder) DrawLine(x0, y0, x1, y1 float64) {
	r.commands = append(r.commands, Command{
		Type: CommandLine,
		From: Vec2{x0, y0},
		To:   Vec2{x1, y1},
	})
}

// Commands returns the recorded commands. The returned slice MUST NOT be mutated.
func (r *Recorder) Commands() []Command {
	return r.commands
}

// Reset discards all commands, keeping the buffer.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
}

// Segments resolves the recorded stream into lines carrying their stroke state.
func (r *Recorder) Segments() []Segment {
	var out []Segment
	cur := Color{A: 1}
	width := 1.0
	for _, cmd := range r.commands {
		switch cmd.Type {
		case CommandStrokeColor:
			cur = cmd.Color
		case CommandStrokeWidth:
			width = cmd.Width
		case CommandLine:
			out = append(out, Segment{From: cmd.From, To: cmd.To, Color: cur, Width: width})
		}
	}
	return out
}

// Replay sends the recorded commands to dst in order. Clear commands are
// skipped when skipClear is set, so several recordings can share one surface.
func (r *Recorder) Replay(dst Surface, skipClear bool) {
	for _, cmd := range r.commands {
		switch cmd.Type {
		case CommandClear:
			if !skipClear {
				dst.Clear(cmd.Color)
			}
		case CommandStrokeColor:
			dst.SetStrokeColor(cmd.Color)
		case CommandStrokeWidth:
			dst.SetStrokeWidth(cmd.Width)
		case CommandLine:
			dst.DrawLine(cmd.From.X, cmd.From.Y, cmd.To.X, cmd.To.Y)
		}
	}
}
