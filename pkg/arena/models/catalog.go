package models

// ModelInfo records where a known model's weights are published.
type ModelInfo struct {
	File   string // file name under the models directory
	Source string // download URL for the GGUF artifact
	Author string
}

// Catalog maps the short names accepted by `arena pull` to their
// published weights. Any GGUF file dropped into the models directory
// by hand works just as well.
var Catalog = map[string]ModelInfo{
	"llama3": {
		File:   "llama-3.2-3b-instruct-q4_k_m.gguf",
		Source: "https://huggingface.co/bartowski/Llama-3.2-3B-Instruct-GGUF/resolve/main/Llama-3.2-3B-Instruct-Q4_K_M.gguf",
		Author: "Meta",
	},

	"gemma3": {
		File:   "gemma-3-4b-it-Q4_K_M.gguf",
		Source: "https://huggingface.co/ggml-org/gemma-3-4b-it-GGUF/resolve/main/gemma-3-4b-it-Q4_K_M.gguf",
		Author: "Google",
	},

	"qwen2.5": {
		File:   "qwen2.5-3b-instruct-q4_k_m.gguf",
		Source: "https://huggingface.co/Qwen/Qwen2.5-3B-Instruct-GGUF/resolve/main/qwen2.5-3b-instruct-q4_k_m.gguf",
		Author: "Alibaba",
	},
}
