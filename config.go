package reel

import "fmt"

// EmptyGroupPolicy controls what Restructure does with a container whose
// children are all removed: keep it as an empty structural element, or drop
// it from the list entirely.
type EmptyGroupPolicy uint8

const (
	// KeepEmptyGroups retains a container in place even when restructuring
	// removed every one of its children. Default.
	KeepEmptyGroups EmptyGroupPolicy = iota
	// DropEmptyGroups removes a container from the list once restructuring
	// has emptied it.
	DropEmptyGroups
)

// DedupPolicy controls how ExtractFamilyMembers treats a mobject reachable
// through more than one top-level entry.
type DedupPolicy uint8

const (
	// DedupFirstOccurrence keeps only the first occurrence of each handle in
	// the flattened sequence. Default.
	DedupFirstOccurrence DedupPolicy = iota
	// PreserveDuplicates keeps every occurrence.
	PreserveDuplicates
)

// Config carries all render-time settings. It is passed explicitly to each
// component at construction; there is no package-level configuration.
type Config struct {
	// Width and Height are the output frame dimensions in pixels.
	Width  int
	Height int

	// FPS is the frame rate used by the render loop to size animation runs.
	FPS int

	// Background is the color a frame starts from when no static raster
	// cache exists.
	Background Color

	// UseZIndex makes family extraction order members by z-index
	// (stable sort, ties keep tree order).
	UseZIndex bool

	// Supersampling is the factor the software backend renders at before
	// downsampling to Width x Height. Values below 1 mean no supersampling.
	Supersampling int

	// EmptyGroups selects the fate of containers emptied by restructuring.
	EmptyGroups EmptyGroupPolicy

	// Dedup selects how family extraction treats repeated members.
	Dedup DedupPolicy
}

// DefaultConfig returns the settings used when a caller passes a zero Config.
func DefaultConfig() Config {
	return Config{
		Width:         854,
		Height:        480,
		FPS:           30,
		Background:    ColorBlack,
		UseZIndex:     true,
		Supersampling: 2,
	}
}

// withDefaults fills zero-valued fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Width == 0 {
		c.Width = d.Width
	}
	if c.Height == 0 {
		c.Height = d.Height
	}
	if c.FPS == 0 {
		c.FPS = d.FPS
	}
	if c.Supersampling == 0 {
		c.Supersampling = d.Supersampling
	}
	return c
}

// validate reports the first invalid setting, if any.
func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("frame size %dx%d: dimensions must be positive", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps %d: must be positive", c.FPS)
	}
	if c.Supersampling < 1 {
		return fmt.Errorf("supersampling %d: must be at least 1", c.Supersampling)
	}
	return nil
}
