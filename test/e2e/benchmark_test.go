package e2e_test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// generateNestedJSON creates a deeply nested JSON structure for benchmarking
func generateNestedJSON(depth int, width int) map[string]interface{} {
	if depth <= 0 {
		return map[string]interface{}{
			"leaf":    "data",
			"count":   rand.Intn(100),
			"enabled": rand.Intn(2) == 1,
		}
	}

	result := make(map[string]interface{})
	for i := 0; i < width; i++ {
		key := fmt.Sprintf("nested_%d_%d", depth, i)
		result[key] = generateNestedJSON(depth-1, width)
	}
	return result
}

// generateItemArray creates an array of flat objects for benchmarking
func generateItemArray(count int) []map[string]interface{} {
	rng := rand.New(rand.NewSource(42))
	items := make([]map[string]interface{}, count)
	for i := 0; i < count; i++ {
		items[i] = map[string]interface{}{
			"id":       i + 1,
			"name":     fmt.Sprintf("Item %d", i+1),
			"price":    rng.Float64() * 1000,
			"quantity": rng.Intn(100),
			"active":   rng.Intn(2) == 1,
		}
	}
	return items
}

// BenchmarkDeepNesting benchmarks conversion of deeply nested JSON structures
func BenchmarkDeepNesting(b *testing.B) {
	if testing.Short() {
		b.Skip("skipping benchmark in short mode")
	}

	tempDir, err := os.MkdirTemp("", "jsonkdl-bench-nesting")
	require.NoError(b, err)
	defer func() {
		if err := os.RemoveAll(tempDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error removing directory: %v\n", err)
		}
	}()

	depths := []struct {
		name  string
		depth int
		width int
	}{
		{"Depth3Width3", 3, 3},
		{"Depth5Width2", 5, 2},
		{"Depth2Width10", 2, 10},
	}

	for _, depth := range depths {
		b.Run(depth.name, func(b *testing.B) {
			nestedData := generateNestedJSON(depth.depth, depth.width)
			jsonData, err := json.MarshalIndent(nestedData, "", "  ")
			require.NoError(b, err)

			jsonFile := filepath.Join(tempDir, fmt.Sprintf("%s.json", depth.name))
			err = os.WriteFile(jsonFile, jsonData, 0644)
			require.NoError(b, err)

			outputFile := filepath.Join(tempDir, fmt.Sprintf("%s.kdl", depth.name))

			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				cmd := exec.Command("go", "run", "../../main.go", "-f", jsonFile, outputFile)
				output, err := cmd.CombinedOutput()
				require.NoError(b, err, "CLI command failed: %s", string(output))
			}
		})
	}
}

// BenchmarkLargeArrays benchmarks conversion of large JSON arrays
func BenchmarkLargeArrays(b *testing.B) {
	if testing.Short() {
		b.Skip("skipping benchmark in short mode")
	}

	tempDir, err := os.MkdirTemp("", "jsonkdl-bench-arrays")
	require.NoError(b, err)
	defer func() {
		if err := os.RemoveAll(tempDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error removing directory: %v\n", err)
		}
	}()

	sizes := []struct {
		name      string
		itemCount int
	}{
		{"Array100", 100},
		{"Array1000", 1000},
		{"Array5000", 5000},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			jsonData, err := json.Marshal(generateItemArray(size.itemCount))
			require.NoError(b, err)

			jsonFile := filepath.Join(tempDir, fmt.Sprintf("%s.json", size.name))
			err = os.WriteFile(jsonFile, jsonData, 0644)
			require.NoError(b, err)

			outputFile := filepath.Join(tempDir, fmt.Sprintf("%s.kdl", size.name))

			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				cmd := exec.Command("go", "run", "../../main.go", "-f", jsonFile, outputFile)
				output, err := cmd.CombinedOutput()
				require.NoError(b, err, "CLI command failed: %s", string(output))
			}
		})
	}
}
