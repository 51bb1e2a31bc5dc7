// Package serialization persists trained models.
//
// Checkpoint layout: a 4-byte magic, a uint32 header length, a JSON
// header describing the architecture and the named tensors, then the
// raw little-endian float64 payloads in header order. A loaded model
// exposes exactly the same forward-pass contract as a freshly
// constructed one.
package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/4OH4/startup-name-generator/internal/nn"
)

const (
	magic         = "SNG1"
	formatVersion = 1
)

type header struct {
	FormatVersion int          `json:"format_version"`
	VocabSize     int          `json:"vocab_size"`
	HiddenSize    int          `json:"hidden_size"`
	Layers        int          `json:"layers"`
	Tensors       []tensorMeta `json:"tensors"`
}

type tensorMeta struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
	Cols int    `json:"cols"`
}

// Save writes a model checkpoint to path.
func Save(model *nn.CharLM, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("serialization: %w", err)
	}
	defer f.Close()

	params := model.Parameters()
	h := header{
		FormatVersion: formatVersion,
		VocabSize:     model.VocabSize(),
		HiddenSize:    model.HiddenSize(),
		Layers:        model.Layers(),
		Tensors:       make([]tensorMeta, len(params)),
	}
	for i, p := range params {
		rows, cols := p.Value().Dims()
		h.Tensors[i] = tensorMeta{Name: p.Name(), Rows: rows, Cols: cols}
	}

	headerJSON, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("serialization: %w", err)
	}

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(magic); err != nil {
		return fmt.Errorf("serialization: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(headerJSON))); err != nil {
		return fmt.Errorf("serialization: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("serialization: %w", err)
	}
	for _, p := range params {
		if err := binary.Write(w, binary.LittleEndian, p.Value().RawMatrix().Data); err != nil {
			return fmt.Errorf("serialization: write %s: %w", p.Name(), err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("serialization: %w", err)
	}
	return f.Close()
}

// Load reads a checkpoint and reconstructs the model it was saved from.
func Load(path string) (*nn.CharLM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("serialization: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	gotMagic := make([]byte, len(magic))
	if _, err := io.ReadFull(r, gotMagic); err != nil {
		return nil, fmt.Errorf("serialization: %w", err)
	}
	if string(gotMagic) != magic {
		return nil, fmt.Errorf("serialization: %s is not a model checkpoint", path)
	}

	var headerLen uint32
	if err := binary.Read(r, binary.LittleEndian, &headerLen); err != nil {
		return nil, fmt.Errorf("serialization: %w", err)
	}
	headerJSON := make([]byte, headerLen)
	if _, err := io.ReadFull(r, headerJSON); err != nil {
		return nil, fmt.Errorf("serialization: %w", err)
	}
	var h header
	if err := json.Unmarshal(headerJSON, &h); err != nil {
		return nil, fmt.Errorf("serialization: malformed header: %w", err)
	}
	if h.FormatVersion != formatVersion {
		return nil, fmt.Errorf("serialization: unsupported format version %d", h.FormatVersion)
	}

	model := nn.NewCharLM(h.VocabSize, nn.Config{
		HiddenSize: h.HiddenSize,
		Layers:     h.Layers,
		Seed:       0,
	})

	byName := make(map[string]*nn.Parameter)
	for _, p := range model.Parameters() {
		byName[p.Name()] = p
	}

	for _, meta := range h.Tensors {
		p, ok := byName[meta.Name]
		if !ok {
			return nil, fmt.Errorf("serialization: checkpoint tensor %q has no place in the model", meta.Name)
		}
		rows, cols := p.Value().Dims()
		if rows != meta.Rows || cols != meta.Cols {
			return nil, fmt.Errorf("serialization: tensor %q is %dx%d, model wants %dx%d",
				meta.Name, meta.Rows, meta.Cols, rows, cols)
		}
		if err := binary.Read(r, binary.LittleEndian, p.Value().RawMatrix().Data); err != nil {
			return nil, fmt.Errorf("serialization: read %s: %w", meta.Name, err)
		}
		delete(byName, meta.Name)
	}
	if len(byName) > 0 {
		return nil, fmt.Errorf("serialization: checkpoint is missing %d model tensors", len(byName))
	}

	return model, nil
}
