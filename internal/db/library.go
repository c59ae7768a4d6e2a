package db

import (
	"database/sql"

	"github.com/gao4263/CineLearn-AI/internal/db/models"
)

func (d *Database) UpsertVideo(v *models.Video) error {
	_, err := d.db.Exec(`
		INSERT INTO videos (id, name, path, subtitle_path, season, episode, parent_id, duration, last_played, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, path=excluded.path, subtitle_path=excluded.subtitle_path,
			season=excluded.season, episode=excluded.episode, parent_id=excluded.parent_id,
			duration=excluded.duration`,
		v.ID, v.Name, v.Path, v.SubtitlePath, v.Season, v.Episode, v.ParentID, v.Duration, v.LastPlayed, v.CreatedAt,
	)
	return err
}

func (d *Database) GetVideo(id string) (*models.Video, error) {
	v := &models.Video{}
	err := d.db.QueryRow(`
		SELECT id, name, path, subtitle_path, season, episode, parent_id, duration, last_played, created_at
		FROM videos WHERE id = ?`, id,
	).Scan(&v.ID, &v.Name, &v.Path, &v.SubtitlePath, &v.Season, &v.Episode, &v.ParentID, &v.Duration, &v.LastPlayed, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (d *Database) ListVideos() ([]*models.Video, error) {
	rows, err := d.db.Query(`
		SELECT id, name, path, subtitle_path, season, episode, parent_id, duration, last_played, created_at
		FROM videos ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []*models.Video
	for rows.Next() {
		v := &models.Video{}
		if err := rows.Scan(&v.ID, &v.Name, &v.Path, &v.SubtitlePath, &v.Season, &v.Episode,
			&v.ParentID, &v.Duration, &v.LastPlayed, &v.CreatedAt); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// DeleteVideo removes a video and its dependent study artifacts.
func (d *Database) DeleteVideo(id string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM saved_words WHERE video_id = ?",
		"DELETE FROM saved_subtitles WHERE video_id = ?",
		"DELETE FROM corpus_items WHERE video_id = ?",
		"DELETE FROM watch_history WHERE video_id = ?",
		"DELETE FROM videos WHERE id = ?",
	} {
		if _, err := tx.Exec(stmt, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// UpdateVideoPath points a video at a new media file, typically after a
// conversion job produced the MP4 sibling.
func (d *Database) UpdateVideoPath(id, path string) error {
	_, err := d.db.Exec("UPDATE videos SET path = ? WHERE id = ?", path, id)
	return err
}

func (d *Database) UpdateLastPlayed(id string, position float64) error {
	_, err := d.db.Exec("UPDATE videos SET last_played = ? WHERE id = ?", position, id)
	return err
}

func (d *Database) CreateFolder(f *models.Folder) error {
	_, err := d.db.Exec(
		"INSERT INTO folders (id, name, parent_id, created_at) VALUES (?, ?, ?, ?)",
		f.ID, f.Name, f.ParentID, f.CreatedAt,
	)
	return err
}

func (d *Database) ListFolders() ([]*models.Folder, error) {
	rows, err := d.db.Query("SELECT id, name, parent_id, created_at FROM folders ORDER BY created_at ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []*models.Folder
	for rows.Next() {
		f := &models.Folder{}
		if err := rows.Scan(&f.ID, &f.Name, &f.ParentID, &f.CreatedAt); err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// FindFolder looks a folder up by name (case-insensitive) under the given
// parent. Used by import routing to reuse existing show/season folders.
func (d *Database) FindFolder(name, parentID string) (*models.Folder, error) {
	f := &models.Folder{}
	err := d.db.QueryRow(
		"SELECT id, name, parent_id, created_at FROM folders WHERE name = ? COLLATE NOCASE AND parent_id = ?",
		name, parentID,
	).Scan(&f.ID, &f.Name, &f.ParentID, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (d *Database) DeleteFolder(id string) error {
	_, err := d.db.Exec("DELETE FROM folders WHERE id = ?", id)
	return err
}
