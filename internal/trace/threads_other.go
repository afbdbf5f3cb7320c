//go:build !linux

package trace

func defaultThreads() Threads { return StaticThreads{} }
