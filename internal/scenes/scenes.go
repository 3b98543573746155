// Package scenes holds the boot script as a registry of ordered scenes.
// Scenes register themselves in init() functions and each one drives the
// terminal canvas through its segment of the animation: the BIOS power-on
// test, the logo reveal, the login and the fetch card.
package scenes

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fynn9563/bootgif/internal/config"
	"github.com/fynn9563/bootgif/internal/github"
	"github.com/fynn9563/bootgif/internal/term"
)

// Context carries the canvas and the data scenes interpolate into it.
type Context struct {
	Term     *term.Terminal
	Profile  *config.Profile
	UserName string

	// Stats and Age feed the fetch card; only the fetch scene needs them.
	Stats *github.UserStats
	Age   github.Age

	// Avatar is the path of a pre-composited avatar image, empty to skip
	// the paste.
	Avatar string

	// LogoFace is the display face for the logo reveal; nil keeps the
	// terminal face.
	LogoFace *term.Face

	// Now fixes the clock for banner years and the last-login stamp. Zero
	// means the current time.
	Now time.Time

	Logger *log.Logger
}

// now returns the script clock in the profile's timezone.
func (c *Context) now() time.Time {
	now := c.Now
	if now.IsZero() {
		now = time.Now()
	}
	loc, err := time.LoadLocation(c.Profile.Timezone)
	if err != nil {
		c.Logger.Debug("unknown timezone, using local clock", "tz", c.Profile.Timezone)
		return now
	}
	return now.In(loc)
}

// Scene is one named contiguous segment of the boot script.
type Scene interface {
	// ID returns the scene's identifier, used for CLI listing.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Run drives the canvas through the scene's segment.
	Run(ctx *Context) error
}

// Info describes a registered scene.
type Info struct {
	Seq   int
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a scene.
type Factory func() Scene

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	infos     = make(map[string]Info)
)

// Register adds a scene factory to the registry at the given sequence
// position. Typically called from a scene's init() function. Panics if the
// ID or the sequence position is already taken.
func Register(seq int, id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("scenes: scene %q already registered", id))
	}
	for _, info := range infos {
		if info.Seq == seq {
			panic(fmt.Sprintf("scenes: sequence %d already taken by %q", seq, info.ID))
		}
	}

	factories[id] = f
	infos[id] = Info{Seq: seq, ID: id, Title: f().Title()}
}

// List returns information about all registered scenes in script order.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Seq < result[j].Seq
	})
	return result
}

// Create instantiates a scene by its ID.
// Returns an error if the scene ID is not registered.
func Create(id string) (Scene, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("scenes: unknown scene %q", id)
	}
	return f(), nil
}

// Exists checks if a scene with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// All returns fresh instances of every registered scene in script order.
func All() []Scene {
	result := make([]Scene, 0, len(factories))
	for _, info := range List() {
		scene, _ := Create(info.ID)
		result = append(result, scene)
	}
	return result
}

// RunAll runs every scene in order against ctx.
func RunAll(ctx *Context) error {
	for _, scene := range All() {
		ctx.Logger.Info("running scene", "scene", scene.ID())
		if err := scene.Run(ctx); err != nil {
			return fmt.Errorf("scenes: %s: %w", scene.ID(), err)
		}
	}
	return nil
}

// PromptFor builds the shell prompt string for the profile.
func PromptFor(p *config.Profile) string {
	return fmt.Sprintf("\x1b[92m%s@%s\x1b[0m \x1b[94m~>\x1b[0m ", p.DisplayName, p.HostName)
}
