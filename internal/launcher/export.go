package launcher

import (
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"ck3mm/internal/mods"
)

// ExportOptions controls how a mod list becomes a launcher playset.
type ExportOptions struct {
	// EnabledOnly exports only enabled mods to the mods table instead
	// of the whole list.
	EnabledOnly bool
	// AppendOnly keeps existing playset entries instead of replacing
	// them.
	AppendOnly bool
}

// ExportPlayset writes the mod list into the launcher database as a
// playset with the given name, activates it and deactivates every other
// playset. Enabled mods are linked in load order.
func (db *DB) ExportPlayset(name string, list *mods.List, opts ExportOptions) error {
	return db.WithTx(func(tx *sql.Tx) error {
		playsetID, err := db.upsertPlayset(tx, name, opts.AppendOnly)
		if err != nil {
			return err
		}

		exported := list.All()
		if opts.EnabledOnly {
			exported = list.Enabled()
		}
		modIDs, err := db.syncMods(tx, exported)
		if err != nil {
			return err
		}

		position := 0
		for _, m := range list.Enabled() {
			modID, ok := modIDs[dirPath(m)]
			if !ok {
				continue
			}
			_, err := tx.Exec(
				`INSERT OR REPLACE INTO playsets_mods (playsetId, modId, position, enabled)
				 VALUES (?, ?, ?, 1)`,
				playsetID, modID, position)
			if err != nil {
				return err
			}
			position++
		}

		db.logger.Info("Exported playset", map[string]interface{}{
			"playset": name,
			"mods":    len(exported),
			"enabled": position,
		})
		return nil
	})
}

// upsertPlayset activates the named playset, creating it if needed, and
// deactivates all others.
func (db *DB) upsertPlayset(tx *sql.Tx, name string, appendOnly bool) (string, error) {
	if _, err := tx.Exec("UPDATE playsets SET isActive = 0 WHERE name != ?", name); err != nil {
		return "", err
	}

	var playsetID string
	err := tx.QueryRow("SELECT id FROM playsets WHERE name = ?", name).Scan(&playsetID)
	switch {
	case err == sql.ErrNoRows:
		playsetID = uuid.New().String()
		_, err = tx.Exec(
			`INSERT INTO playsets (id, name, isActive, loadOrder, createdOn)
			 VALUES (?, ?, 1, 'custom', ?)`,
			playsetID, name, time.Now().UTC().Format(time.RFC3339))
		if err != nil {
			return "", err
		}
	case err != nil:
		return "", err
	default:
		if _, err := tx.Exec("UPDATE playsets SET isActive = 1 WHERE id = ?", playsetID); err != nil {
			return "", err
		}
	}

	if !appendOnly {
		if _, err := tx.Exec("DELETE FROM playsets_mods WHERE playsetId = ?", playsetID); err != nil {
			return "", err
		}
	}
	return playsetID, nil
}

// syncMods inserts or updates mod rows and returns dirPath -> mod id.
func (db *DB) syncMods(tx *sql.Tx, items []*mods.Mod) (map[string]string, error) {
	rows, err := tx.Query("SELECT id, dirPath, gameRegistryId FROM mods")
	if err != nil {
		return nil, err
	}
	existing := make(map[[2]string]string)
	for rows.Next() {
		var id string
		var dir, registry sql.NullString
		if err := rows.Scan(&id, &dir, &registry); err != nil {
			rows.Close()
			return nil, err
		}
		existing[[2]string{dir.String, registry.String}] = id
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	modIDs := make(map[string]string, len(items))
	for _, m := range items {
		dir := dirPath(m)
		descriptor := filepath.ToSlash(m.DescriptorFile)
		source := "local"
		if m.RemoteFileID != "" {
			source = "pdx"
		}

		if id, ok := existing[[2]string{dir, descriptor}]; ok {
			_, err := tx.Exec(
				`UPDATE mods SET displayName = ?, status = ?, source = ? WHERE id = ?`,
				m.Name, "ready_to_play", source, id)
			if err != nil {
				return nil, err
			}
			modIDs[dir] = id
			continue
		}

		id := uuid.New().String()
		_, err := tx.Exec(
			`INSERT INTO mods (id, gameRegistryId, status, dirPath, displayName, source, tags, requiredVersion)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, descriptor, "ready_to_play", dir, m.Name, source,
			strings.Join(m.Tags, ","), m.SupportedVersion)
		if err != nil {
			return nil, err
		}
		modIDs[dir] = id
	}
	return modIDs, nil
}

// ActivePlayset returns the name of the currently active playset.
func (db *DB) ActivePlayset() (string, bool, error) {
	var name string
	err := db.conn.QueryRow("SELECT name FROM playsets WHERE isActive = 1 LIMIT 1").Scan(&name)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

// PlaysetMods returns the display names of mods linked to the named
// playset, in position order.
func (db *DB) PlaysetMods(name string) ([]string, error) {
	rows, err := db.conn.Query(
		`SELECT m.displayName FROM playsets p
		 JOIN playsets_mods pm ON pm.playsetId = p.id
		 JOIN mods m ON m.id = pm.modId
		 WHERE p.name = ? ORDER BY pm.position`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func dirPath(m *mods.Mod) string {
	return filepath.ToSlash(m.Path)
}
