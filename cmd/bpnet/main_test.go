package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{"version"}, &stdout, &stderr))
	assert.Equal(t, "bpnet "+version+"\n", stdout.String())
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Commands:")

	stderr.Reset()
	assert.Equal(t, 2, run([]string{"serve"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), `unknown command "serve"`)
}

func TestRun_BadFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"train", "-epochs", "x"}, &stdout, &stderr))
	assert.Equal(t, 2, run([]string{"train", "-hidden", "0"}, &stdout, &stderr))
}

func TestRun_EvalMissingModel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	model := filepath.Join(t.TempDir(), "none.json")
	assert.Equal(t, 1, run([]string{"eval", "-synthetic", "-model", model}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "failed to load model")
}

func TestRun_MissingImages(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := []string{"train", "-data", t.TempDir(), "-model", filepath.Join(t.TempDir(), "m.json")}
	assert.Equal(t, 1, run(args, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "subject01_1.bmp")
}

func TestRun_TrainThenEval(t *testing.T) {
	model := filepath.Join(t.TempDir(), "bp.json")
	common := []string{
		"-synthetic",
		"-sample-length", "16",
		"-hidden", "8",
		"-seed", "5",
		"-color=false",
		"-model", model,
	}

	var stdout, stderr bytes.Buffer
	code := run(append([]string{"train", "-epochs", "2"}, common...), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "Info     Start training model with hidden 8 neurons, learning rate 0.3")
	assert.Contains(t, out, "Epoch 0 training finished with accuracy")
	assert.Contains(t, out, "Epoch 1 training finished with accuracy")
	assert.Contains(t, out, "Model saved to "+model)
	assert.Contains(t, out, "Testing finished with model accuracy")
	assert.FileExists(t, model)

	stdout.Reset()
	code = run(append([]string{"eval"}, common...), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "Loaded model")
	assert.Contains(t, stdout.String(), "(16-8-15, sigmoid)")
	assert.Contains(t, stdout.String(), "Testing finished with model accuracy")
}
