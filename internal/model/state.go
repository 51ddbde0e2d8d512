package model

type LoopState string

const (
	StateIdle       LoopState = "IDLE"
	StateUploading  LoopState = "UPLOADING"
	StateTerminated LoopState = "TERMINATED"
)
