package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		So(SetFormat(FormatText), ShouldBeNil)

		Convey("When it is initialized", func() {
			So(Init(), ShouldBeNil)

			Convey("Then Get returns a usable logger", func() {
				So(Get(), ShouldNotBeNil)
				So(Sync(), ShouldBeNil)
			})
		})

		Convey("When initialized with a nil writer", func() {
			err := InitWithWriter(nil)

			Convey("Then it fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a logger writing to a buffer", t, func() {
		So(SetFormat(FormatText), ShouldBeNil)
		var buf bytes.Buffer
		So(InitWithWriter(&buf), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging at info", func() {
			Get().Info(ctx, "games parsed", Int("games", 3), String("dir", "data"))

			Convey("Then fields and source are written", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "games parsed")
				So(out, ShouldContainSubstring, "games=3")
				So(out, ShouldContainSubstring, "dir=data")
				So(out, ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When the level is raised to warn", func() {
			So(SetLevelString("warn"), ShouldBeNil)
			Get().Info(ctx, "hidden")
			Get().Warn(ctx, "shown")

			Convey("Then info is suppressed", func() {
				So(buf.String(), ShouldNotContainSubstring, "hidden")
				So(buf.String(), ShouldContainSubstring, "shown")
			})
		})

		Convey("When a named logger is used", func() {
			Named("worker").Info(ctx, "parsed", String("file", "STATS-1.xlsx"))

			Convey("Then the group prefixes the attributes", func() {
				So(buf.String(), ShouldContainSubstring, "worker.file=STATS-1.xlsx")
			})
		})
	})
}

func TestLoggerJSONFormat(t *testing.T) {
	Convey("Given a json-formatted logger", t, func() {
		var buf bytes.Buffer
		So(InitWithWriter(&buf), ShouldBeNil)
		So(SetFormat("JSON"), ShouldBeNil)
		defer func() { _ = SetFormat(FormatText) }()

		Get().Info(context.Background(), "run finished", Bool("served", false))

		Convey("Then each line is a json object", func() {
			line := strings.TrimSpace(buf.String())
			var m map[string]any
			So(json.Unmarshal([]byte(line), &m), ShouldBeNil)
			So(m["msg"], ShouldEqual, "run finished")
			So(m["served"], ShouldEqual, false)
		})
	})

	Convey("Given an unknown format", t, func() {
		Convey("Then SetFormat rejects it", func() {
			So(SetFormat("xml"), ShouldNotBeNil)
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		for _, lvl := range []string{"debug", "info", "", "warn", "warning", "error", " ERROR "} {
			So(SetLevelString(lvl), ShouldBeNil)
		}
		So(SetLevelString("verbose"), ShouldNotBeNil)
		_ = SetLevelString("info")
	})
}
