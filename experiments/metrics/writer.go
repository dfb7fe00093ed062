package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type MoveRecord struct {
	Game int
	MoveMetric
}

type GameRecord struct {
	ID int
	GameMetric
}

// ScalingRecord is one worker count of a goroutine-scaling run. Speedup is
// relative to the first count of the run.
type ScalingRecord struct {
	Speedup float64
	SearchMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> and writes every file there.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000000000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

// WriteConfig stores a YAML snapshot of the run configuration.
func (w *Writer) WriteConfig(config any) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	path := filepath.Join(w.baseDir, "config.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (w *Writer) WriteIterations(records []IterationRecord) error {
	header := []string{"depth", "best", "best_move", "moves", "goroutines", "duration", "nodes", "leaves", "cutoffs"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, append([]string{
			strconv.Itoa(record.Depth),
			strconv.Itoa(record.Best),
			record.BestMove,
			strconv.Itoa(record.Moves),
		}, searchColumns(record.SearchMetric)...))
	}
	return w.writeCSV("iterations.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "move", "score", "goroutines", "duration", "nodes", "leaves", "cutoffs"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, append([]string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player,
			record.Move,
			strconv.Itoa(record.Score),
		}, searchColumns(record.SearchMetric)...))
	}
	return w.writeCSV("move_records.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "winner", "start_time", "end_time", "duration", "total_moves", "passes", "final_score"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.Winner,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.Passes),
			strconv.Itoa(record.FinalScore),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteScalingRecords(records []ScalingRecord) error {
	header := []string{"depth", "speedup", "goroutines", "duration", "nodes", "leaves", "cutoffs"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, append([]string{
			strconv.Itoa(record.Depth),
			strconv.FormatFloat(record.Speedup, 'f', 3, 64),
		}, searchColumns(record.SearchMetric)...))
	}
	return w.writeCSV("scaling.csv", header, rows)
}

func searchColumns(m SearchMetric) []string {
	return []string{
		strconv.Itoa(m.Goroutines),
		m.Duration.String(),
		strconv.Itoa(m.Nodes),
		strconv.Itoa(m.Leaves),
		strconv.Itoa(m.Cutoffs),
	}
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	return nil
}
