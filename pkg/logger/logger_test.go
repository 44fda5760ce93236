package logger

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Logger", func() {
	AfterEach(func() {
		Init("error", "text")
	})

	It("should parse levels and fall back to info", func() {
		Expect(parseLevel("debug")).To(Equal(slog.LevelDebug))
		Expect(parseLevel("WARN")).To(Equal(slog.LevelWarn))
		Expect(parseLevel("error")).To(Equal(slog.LevelError))
		Expect(parseLevel("")).To(Equal(slog.LevelInfo))
		Expect(parseLevel("verbose")).To(Equal(slog.LevelInfo))
	})

	It("should write to the given destination", func() {
		var buf bytes.Buffer
		InitWithWriter(&buf, "warn", "json")

		L().Info("hidden")
		L().Warn("shown", "component", "client")

		Expect(buf.String()).NotTo(ContainSubstring("hidden"))
		Expect(buf.String()).To(ContainSubstring(`"msg":"shown"`))
		Expect(buf.String()).To(ContainSubstring(`"component":"client"`))
	})

	Describe("From", func() {
		It("should fall back to the default logger", func() {
			Init("error", "text")
			Expect(From(context.Background())).To(BeIdenticalTo(L()))

			ctx := With(context.Background(), "request_id", "abc")
			Expect(From(ctx)).NotTo(BeIdenticalTo(L()))
		})
	})

	Describe("FromOr", func() {
		It("should prefer the context logger over the fallback", func() {
			fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
			Expect(FromOr(context.Background(), fallback)).To(BeIdenticalTo(fallback))

			ctx := With(context.Background(), "trace_id", "t-1")
			Expect(FromOr(ctx, fallback)).To(BeIdenticalTo(From(ctx)))
		})
	})
})
