package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kingpin"

	"kastelo.dev/iof"
	"kastelo.dev/iof/excel"
)

func main() {
	kingpin.CommandLine.Help = "Extracts results from IOF 3.0 XML files to CSV, one .csv per input file."
	kingpin.CommandLine.UsageWriter(os.Stdout)
	english := kingpin.Flag("en", "Use the English Excel CSV dialect (comma separated); the default matches Excel in most other latin languages like German, French and Swedish").Bool()
	writeXLSX := kingpin.Flag("xlsx", "Also write an .xlsx report next to each .csv").Bool()
	files := kingpin.Arg("files", "IOF 3.0 XML ResultList files").Required().Strings()
	kingpin.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	dialect := iof.DefaultDialect()
	if *english {
		dialect = iof.EnglishDialect()
	}

	for _, file := range *files {
		if err := convert(file, dialect, *writeXLSX, logger); err != nil {
			logger.Error("Conversion failed", "file", file, "error", err)
			os.Exit(1)
		}
	}
}

func convert(file string, dialect iof.Dialect, writeXLSX bool, logger *slog.Logger) error {
	fd, err := os.Open(file)
	if err != nil {
		return err
	}
	cls, err := iof.Parse(fd, logger)
	fd.Close()
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(file, filepath.Ext(file))

	out, err := os.Create(base + ".csv")
	if err != nil {
		return err
	}
	if err := iof.WriteCSV(out, cls, dialect); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	logger.Info("Saved", "path", base+".csv")

	if writeXLSX {
		bs, err := excel.ResultXLSX(cls)
		if err != nil {
			return err
		}
		if err := os.WriteFile(base+".xlsx", bs, 0o644); err != nil {
			return err
		}
		logger.Info("Saved", "path", base+".xlsx")
	}
	return nil
}
