package common

const (
	ToolName       = "unreal_rust_compile"
	ToolVersion    = "0.2.0"
	ConfigFileName = "unreal-rust.toml"
)
