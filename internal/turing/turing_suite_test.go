package turing_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestTuring(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Turing Suite")
}
