package mcp_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/courtsideco/courtside/api/mcp"
	"github.com/courtsideco/courtside/pkg/logger"
	"github.com/courtsideco/courtside/pkg/nba"
)

var _ = Describe("MCP Server", func() {
	Describe("NewServer", func() {
		It("creates a server with the NBA tools", func() {
			server, err := mcp.NewServer(mcp.Config{
				Client: nba.NewClient(nba.Config{APIKey: "test"}),
				Logger: logger.Nop(),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(server.Handler()).NotTo(BeNil())
		})

		It("returns an error when the client is nil", func() {
			_, err := mcp.NewServer(mcp.Config{
				Logger: logger.Nop(),
			})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("nba client is required"))
		})

		It("returns an error when the logger is nil", func() {
			_, err := mcp.NewServer(mcp.Config{
				Client: nba.NewClient(nba.Config{}),
			})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("logger is required"))
		})

		It("builds an empty server in noop mode without dependencies", func() {
			_, err := mcp.NewServer(mcp.Config{Noop: true})
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
