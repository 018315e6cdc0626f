package dispatcher

import (
	"FragFS/internal/domain"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Backend is the set of store operations the dispatcher drives.
// client.StoreClient implements it.
type Backend interface {
	Create(name string, size float64) ([]int, error)
	Delete(name string) (int, error)
	Resize(name string, size float64) (int, error)
	Layout() (*domain.Layout, error)
	Defragment() (*domain.Layout, error)
	Wipe() (*domain.Layout, error)
	Restore() (*domain.Layout, error)
}

type Reply struct {
	Message string
	Failed  bool
}

func ok(format string, args ...any) Reply {
	return Reply{Message: fmt.Sprintf(format, args...)}
}

func fail(format string, args ...any) Reply {
	return Reply{Message: fmt.Sprintf(format, args...), Failed: true}
}

const helpText = "Commands: forge, resize, banish, mend, rupture, revive, layout, help"

type Dispatcher struct {
	backend Backend
}

func NewDispatcher(backend Backend) *Dispatcher {
	return &Dispatcher{backend: backend}
}

// Execute parses one input line and runs it against the backend. Empty lines
// produce an empty reply.
func (d *Dispatcher) Execute(line string) Reply {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Reply{}
	}
	command, args := strings.ToLower(fields[0]), fields[1:]

	switch command {
	case "forge":
		if len(args) != 2 {
			return fail("Usage: forge [name] [size]")
		}
		size, err := parseSize(args[1])
		if err != nil {
			return fail("%v", err)
		}
		blocks, err := d.backend.Create(args[0], size)
		if err != nil {
			return fail("%v", err)
		}
		return ok("%s forged (%v) in blocks %v", args[0], size, blocks)

	case "resize":
		if len(args) != 2 {
			return fail("Usage: resize [name] [size]")
		}
		size, err := parseSize(args[1])
		if err != nil {
			return fail("%v", err)
		}
		if _, err := d.backend.Resize(args[0], size); err != nil {
			return fail("%v", err)
		}
		return ok("%s resized to %v", args[0], size)

	case "banish":
		if len(args) != 1 {
			return fail("Usage: banish [name]")
		}
		if _, err := d.backend.Delete(args[0]); err != nil {
			return fail("%v", err)
		}
		return ok("%s banished.", args[0])

	case "mend":
		if _, err := d.backend.Defragment(); err != nil {
			return fail("%v", err)
		}
		return ok("Memory Mended.")

	case "rupture":
		if _, err := d.backend.Wipe(); err != nil {
			return fail("%v", err)
		}
		return ok("Memory Ruptured. Use 'revive' to restore from backup.")

	case "revive":
		if _, err := d.backend.Restore(); err != nil {
			if errors.Is(err, domain.ErrNoBackup) {
				return fail("No backup to revive from.")
			}
			return fail("%v", err)
		}
		return ok("System Revived.")

	case "layout":
		layout, err := d.backend.Layout()
		if err != nil {
			return fail("%v", err)
		}
		return ok("%s", RenderLayout(*layout))

	case "help":
		return ok(helpText)

	default:
		return fail("Unknown: %s", command)
	}
}

func parseSize(raw string) (float64, error) {
	size, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(size) {
		return 0, fmt.Errorf("%w: Size must be a number", domain.ErrInvalidSize)
	}
	return size, nil
}

// RenderLayout draws one character per block: '.' free, '#' full, '+' partly
// used. The file list follows in directory order.
func RenderLayout(layout domain.Layout) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d blocks free, %.1f%% used\n",
		layout.FreeBlocks(), layout.Capacity, layout.Usage()*100)
	for i, block := range layout.Blocks {
		if i > 0 && i%25 == 0 {
			b.WriteByte('\n')
		}
		used := block.Used()
		switch {
		case block.IsFree():
			b.WriteByte('.')
		case used >= 1-1e-3:
			b.WriteByte('#')
		default:
			b.WriteByte('+')
		}
	}
	for _, f := range layout.Files {
		fmt.Fprintf(&b, "\n%-16s %8.3f  %v", f.Name, f.Size, f.BlockIndices)
	}
	return b.String()
}
