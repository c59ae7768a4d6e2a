package db

import (
	"database/sql"
	"log"

	"github.com/gao4263/CineLearn-AI/internal/annotate"
	"github.com/gao4263/CineLearn-AI/internal/db/models"
)

func (d *Database) CreateSavedWord(w *models.SavedWord) error {
	_, err := d.db.Exec(`
		INSERT INTO saved_words (id, word, translation, pronunciation, context_sentence, video_id, subtitle_id, mastered, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.Word, w.Translation, w.Pronunciation, w.ContextSentence, w.VideoID, w.SubtitleID, w.Mastered, w.Timestamp,
	)
	return err
}

func (d *Database) ListSavedWords() ([]*models.SavedWord, error) {
	rows, err := d.db.Query(`
		SELECT id, word, translation, pronunciation, context_sentence, video_id, subtitle_id, mastered, timestamp
		FROM saved_words ORDER BY timestamp DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []*models.SavedWord
	for rows.Next() {
		w := &models.SavedWord{}
		if err := rows.Scan(&w.ID, &w.Word, &w.Translation, &w.Pronunciation, &w.ContextSentence,
			&w.VideoID, &w.SubtitleID, &w.Mastered, &w.Timestamp); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

func (d *Database) SetWordMastered(id string, mastered bool) error {
	_, err := d.db.Exec("UPDATE saved_words SET mastered = ? WHERE id = ?", mastered, id)
	return err
}

func (d *Database) DeleteSavedWord(id string) error {
	_, err := d.db.Exec("DELETE FROM saved_words WHERE id = ?", id)
	return err
}

func (d *Database) CreateSavedSubtitle(s *models.SavedSubtitle) error {
	_, err := d.db.Exec(`
		INSERT INTO saved_subtitles (id, text, start_time, end_time, video_id, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.Text, s.StartTime, s.EndTime, s.VideoID, s.Timestamp,
	)
	return err
}

func (d *Database) ListSavedSubtitles() ([]*models.SavedSubtitle, error) {
	rows, err := d.db.Query(`
		SELECT id, text, start_time, end_time, video_id, timestamp
		FROM saved_subtitles ORDER BY timestamp DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*models.SavedSubtitle
	for rows.Next() {
		s := &models.SavedSubtitle{}
		if err := rows.Scan(&s.ID, &s.Text, &s.StartTime, &s.EndTime, &s.VideoID, &s.Timestamp); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (d *Database) DeleteSavedSubtitle(id string) error {
	_, err := d.db.Exec("DELETE FROM saved_subtitles WHERE id = ?", id)
	return err
}

func (d *Database) CreateAnnotation(a annotate.Annotation) error {
	_, err := d.db.Exec(`
		INSERT INTO corpus_items (id, video_id, subtitle_id, type, content, anchor, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.VideoID, a.SubtitleID, a.Category, a.Content, a.Anchor, a.Timestamp,
	)
	return err
}

func (d *Database) ListAnnotations(videoID string) ([]annotate.Annotation, error) {
	rows, err := d.db.Query(`
		SELECT id, video_id, subtitle_id, type, content, anchor, timestamp
		FROM corpus_items WHERE video_id = ? ORDER BY timestamp ASC`, videoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAnnotations(rows)
}

func (d *Database) AnnotationsForSubtitle(subtitleID string) ([]annotate.Annotation, error) {
	rows, err := d.db.Query(`
		SELECT id, video_id, subtitle_id, type, content, anchor, timestamp
		FROM corpus_items WHERE subtitle_id = ? ORDER BY timestamp ASC`, subtitleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAnnotations(rows)
}

func (d *Database) DeleteAnnotation(id string) error {
	_, err := d.db.Exec("DELETE FROM corpus_items WHERE id = ?", id)
	return err
}

// ForSubtitle implements playback.AnnotationSource. The sync loop queries it
// on every clock evaluation, so query errors degrade to "no annotations"
// instead of interrupting playback.
func (d *Database) ForSubtitle(subtitleID string) []annotate.Annotation {
	anns, err := d.AnnotationsForSubtitle(subtitleID)
	if err != nil {
		log.Printf("[db] annotation lookup for %s: %v", subtitleID, err)
		return nil
	}
	return anns
}

func scanAnnotations(rows *sql.Rows) ([]annotate.Annotation, error) {
	var anns []annotate.Annotation
	for rows.Next() {
		var a annotate.Annotation
		if err := rows.Scan(&a.ID, &a.VideoID, &a.SubtitleID, &a.Category, &a.Content, &a.Anchor, &a.Timestamp); err != nil {
			return nil, err
		}
		anns = append(anns, annotate.Normalize(a))
	}
	return anns, rows.Err()
}
