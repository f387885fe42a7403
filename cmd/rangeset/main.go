package main

import (
	"os"

	"k8s.io/klog/v2"
)

func main() {
	defer klog.Flush()
	if err := newRootCmd().Execute(); err != nil {
		klog.ErrorS(err, "command failed")
		os.Exit(1)
	}
}
