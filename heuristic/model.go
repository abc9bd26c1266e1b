package heuristic

import (
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

// ErrInputDimension is returned by Predict for inputs of the wrong length.
var ErrInputDimension = errors.New("model input has the wrong dimension")

// Activation names accepted in model files.
const (
	ActivationReLU   = "relu"
	ActivationLinear = "linear"
)

// LayerSpec is the serialized form of a dense layer: Weights has one row per
// output and one column per input.
type LayerSpec struct {
	Weights    [][]float64 `yaml:"weights"`
	Bias       []float64   `yaml:"bias"`
	Activation string      `yaml:"activation"`
}

// ModelSpec is the serialized form of a Model.
type ModelSpec struct {
	Layers []LayerSpec `yaml:"layers"`
}

type layer struct {
	weights    *mat.Dense
	bias       *mat.VecDense
	activation string
}

// Model is a trained feed-forward regression network with a single output.
// It is safe for concurrent use.
type Model struct {
	layers []layer
}

// NewModel validates spec and builds the network.
func NewModel(spec ModelSpec) (*Model, error) {
	if len(spec.Layers) == 0 {
		return nil, errors.New("model has no layers")
	}

	layers := make([]layer, 0, len(spec.Layers))
	inputs := 0
	for i, layerSpec := range spec.Layers {
		rows := len(layerSpec.Weights)
		if rows == 0 || len(layerSpec.Weights[0]) == 0 {
			return nil, fmt.Errorf("layer %d has no weights", i)
		}
		cols := len(layerSpec.Weights[0])
		if i > 0 && cols != inputs {
			return nil, fmt.Errorf("layer %d takes %d inputs, previous layer has %d outputs", i, cols, inputs)
		}
		if len(layerSpec.Bias) != rows {
			return nil, fmt.Errorf("layer %d has %d outputs and %d biases", i, rows, len(layerSpec.Bias))
		}
		switch layerSpec.Activation {
		case "":
			layerSpec.Activation = ActivationLinear
		case ActivationReLU, ActivationLinear:
		default:
			return nil, fmt.Errorf("layer %d: unknown activation '%s'", i, layerSpec.Activation)
		}

		data := make([]float64, 0, rows*cols)
		for r, row := range layerSpec.Weights {
			if len(row) != cols {
				return nil, fmt.Errorf("layer %d: row %d has %d weights, expected %d", i, r, len(row), cols)
			}
			data = append(data, row...)
		}
		layers = append(layers, layer{
			weights:    mat.NewDense(rows, cols, data),
			bias:       mat.NewVecDense(rows, append([]float64(nil), layerSpec.Bias...)),
			activation: layerSpec.Activation,
		})
		inputs = rows
	}
	if inputs != 1 {
		return nil, fmt.Errorf("model has %d outputs, expected 1", inputs)
	}
	return &Model{layers: layers}, nil
}

// LoadModel reads a ModelSpec from a YAML file.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}
	var spec ModelSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse model file %s: %w", path, err)
	}
	model, err := NewModel(spec)
	if err != nil {
		return nil, fmt.Errorf("model file %s: %w", path, err)
	}
	return model, nil
}

// InputDim returns the length of the inputs Predict accepts.
func (m *Model) InputDim() int {
	_, cols := m.layers[0].weights.Dims()
	return cols
}

// Predict runs the network on input.
func (m *Model) Predict(input []float64) (float64, error) {
	if len(input) != m.InputDim() {
		return 0, fmt.Errorf("%w: got %d, expected %d", ErrInputDimension, len(input), m.InputDim())
	}

	activations := mat.NewVecDense(len(input), append([]float64(nil), input...))
	for _, l := range m.layers {
		rows, _ := l.weights.Dims()
		next := mat.NewVecDense(rows, nil)
		next.MulVec(l.weights, activations)
		next.AddVec(next, l.bias)
		if l.activation == ActivationReLU {
			for i := 0; i < rows; i++ {
				if next.AtVec(i) < 0 {
					next.SetVec(i, 0)
				}
			}
		}
		activations = next
	}
	return activations.AtVec(0), nil
}
