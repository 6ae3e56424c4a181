package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cookieempire/internal/catalog"
	"cookieempire/internal/config"
	"cookieempire/internal/ops"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "backup":
		if err := cmdBackup(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "backup failed:", err)
			os.Exit(1)
		}
	case "restore":
		if err := cmdRestore(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "restore failed:", err)
			os.Exit(1)
		}
	case "verify":
		if err := cmdVerify(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "verify failed:", err)
			os.Exit(1)
		}
	case "drill":
		if err := cmdDrill(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "drill failed:", err)
			os.Exit(1)
		}
	default:
		printUsage()
		os.Exit(2)
	}
}

// saveDir resolves the save directory: the flag if given, else the config
// file plus environment.
func saveDir(flagValue, configPath string) (string, *config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return "", nil, err
	}
	cfg = config.FromEnv(cfg)
	if flagValue != "" {
		return flagValue, cfg, nil
	}
	return cfg.Save.Dir, cfg, nil
}

func cmdBackup(args []string) error {
	fs := flag.NewFlagSet("backup", flag.ContinueOnError)
	configPath := fs.String("config", "cookieempire.yml", "config file")
	dataDir := fs.String("save-dir", "", "save directory (default from config)")
	out := fs.String("out", "", "output archive path (.tar.gz)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	dir, _, err := saveDir(*dataDir, *configPath)
	if err != nil {
		return err
	}

	if *out == "" {
		ts := time.Now().UTC().Format("20060102T150405Z")
		*out = filepath.Join("backups", "cookieempire-"+ts+".tar.gz")
	}

	m, err := ops.BackupSaveDir(dir, *out)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%d files)\n", *out, len(m.Files))
	return nil
}

func cmdRestore(args []string) error {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	archive := fs.String("archive", "", "input backup archive (.tar.gz)")
	target := fs.String("target-dir", "data-restored", "restore target directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *archive == "" {
		return fmt.Errorf("archive is required")
	}
	m, err := ops.RestoreSaveDir(*archive, *target)
	if err != nil {
		return err
	}
	fmt.Printf("restored %d verified files into %s\n", len(m.Files), *target)
	return nil
}

func cmdVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	configPath := fs.String("config", "cookieempire.yml", "config file")
	path := fs.String("save", "", "snapshot file (default from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	dir, cfg, err := saveDir("", *configPath)
	if err != nil {
		return err
	}
	if *path == "" {
		*path = filepath.Join(dir, cfg.Save.File)
	}

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		if cat, err = catalog.Load(cfg.CatalogPath); err != nil {
			return err
		}
	}
	v, err := ops.VerifySnapshot(*path, cat)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func cmdDrill(args []string) error {
	fs := flag.NewFlagSet("drill", flag.ContinueOnError)
	configPath := fs.String("config", "cookieempire.yml", "config file")
	dataDir := fs.String("save-dir", "", "save directory (default from config)")
	workDir := fs.String("work-dir", os.TempDir(), "temporary workspace for drill artifacts")
	if err := fs.Parse(args); err != nil {
		return err
	}
	dir, _, err := saveDir(*dataDir, *configPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*workDir, 0o755); err != nil {
		return err
	}
	ts := time.Now().UTC().Format("20060102T150405Z")
	archive := filepath.Join(*workDir, "cookieempire-drill-"+ts+".tar.gz")
	restoreDir := filepath.Join(*workDir, "cookieempire-drill-restore-"+ts)

	if _, err := ops.BackupSaveDir(dir, archive); err != nil {
		return err
	}
	if _, err := ops.RestoreSaveDir(archive, restoreDir); err != nil {
		return err
	}

	srcDigest, err := ops.DirDigest(dir)
	if err != nil {
		return err
	}
	restoreDigest, err := ops.DirDigest(restoreDir)
	if err != nil {
		return err
	}
	if srcDigest != restoreDigest {
		return fmt.Errorf("digest mismatch after restore: src=%s restored=%s", srcDigest, restoreDigest)
	}

	fmt.Println("backup:", archive)
	fmt.Println("restored:", restoreDir)
	fmt.Println("digest:", srcDigest)
	return nil
}

func printUsage() {
	fmt.Println("usage:")
	fmt.Println("  cookieempire-ops backup  [--save-dir data] [--out backups/save.tar.gz]")
	fmt.Println("  cookieempire-ops restore --archive backups/save.tar.gz --target-dir data-restored")
	fmt.Println("  cookieempire-ops verify  [--save data/cookie_save.json]")
	fmt.Println("  cookieempire-ops drill   [--save-dir data] [--work-dir /tmp]")
}
