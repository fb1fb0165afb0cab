package script

import "fmt"

// Block kinds understood by the game script parser.
const (
	KindItem  = "item"
	KindModel = "model"
)

// Line is one `Key = Value,` property of a block.
type Line struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Block is a declaration such as `item Apple { ... }` with its properties in
// emission order.
type Block struct {
	Kind  string `json:"kind"`
	Name  string `json:"name"`
	Lines []Line `json:"lines"`
}

// Declaration returns the `<kind> <name>` header used for duplicate checks.
func (b Block) Declaration() string {
	return b.Kind + " " + b.Name
}

// Value returns the value of the first line with key.
func (b Block) Value(key string) (string, bool) {
	for _, line := range b.Lines {
		if line.Key == key {
			return line.Value, true
		}
	}
	return "", false
}

// ModelBlock returns the world model declaration for asset.
func ModelBlock(asset string) Block {
	return Block{
		Kind: KindModel,
		Name: asset,
		Lines: []Line{
			{Key: "mesh", Value: fmt.Sprintf("WorldItems/%s", asset)},
			{Key: "texture", Value: fmt.Sprintf("WorldItems/%s", asset)},
			{Key: "scale", Value: "1.0"},
		},
	}
}
