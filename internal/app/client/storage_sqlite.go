package client

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"inkboard/internal/domain/element"
)

type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}

	storage := &SQLiteStorage{db: db}

	// Создаем таблицы
	if err := storage.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка инициализации таблиц: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) initTables() error {
	// Локальное зеркало элементов доски. payload хранит элемент
	// целиком в JSON, отдельные колонки нужны только для сортировки.
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS elements (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			z_index INTEGER NOT NULL DEFAULT 0,
			payload TEXT NOT NULL,
			updated_at DATETIME NOT NULL,
			synced BOOLEAN NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_elements_z ON elements(z_index);
		CREATE INDEX IF NOT EXISTS idx_elements_synced ON elements(synced);
	`)

	return err
}

// SaveElement вставляет элемент или обновляет существующий
func (s *SQLiteStorage) SaveElement(el *element.Element, synced bool) error {
	payload, err := json.Marshal(el)
	if err != nil {
		return fmt.Errorf("ошибка сериализации элемента: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO elements (id, type, z_index, payload, updated_at, synced)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			z_index = excluded.z_index,
			payload = excluded.payload,
			updated_at = excluded.updated_at,
			synced = excluded.synced
	`, el.ID.String(), string(el.Type), el.ZIndex, payload,
		el.UpdatedAt.Format(time.RFC3339Nano), synced)

	if err != nil {
		return fmt.Errorf("ошибка сохранения элемента: %w", err)
	}

	return nil
}

func (s *SQLiteStorage) GetElement(id uuid.UUID) (*LocalElement, error) {
	var payload string
	var synced bool

	err := s.db.QueryRow(`
		SELECT payload, synced FROM elements WHERE id = ?
	`, id.String()).Scan(&payload, &synced)

	if err == sql.ErrNoRows {
		return nil, ErrLocalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка получения элемента: %w", err)
	}

	var el element.Element
	if err := json.Unmarshal([]byte(payload), &el); err != nil {
		return nil, fmt.Errorf("ошибка парсинга элемента: %w", err)
	}

	return &LocalElement{Element: el, Synced: synced}, nil
}

// ListElements возвращает все элементы зеркала в порядке z-index
func (s *SQLiteStorage) ListElements() ([]LocalElement, error) {
	return s.list("SELECT payload, synced FROM elements ORDER BY z_index, updated_at, id")
}

// ListUnsynced возвращает элементы, не подтвержденные сервером
func (s *SQLiteStorage) ListUnsynced() ([]LocalElement, error) {
	return s.list("SELECT payload, synced FROM elements WHERE synced = 0 ORDER BY updated_at")
}

func (s *SQLiteStorage) list(query string) ([]LocalElement, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	var elements []LocalElement
	for rows.Next() {
		var payload string
		var synced bool

		if err := rows.Scan(&payload, &synced); err != nil {
			return nil, fmt.Errorf("ошибка сканирования элемента: %w", err)
		}

		var el element.Element
		if err := json.Unmarshal([]byte(payload), &el); err != nil {
			return nil, fmt.Errorf("ошибка парсинга элемента: %w", err)
		}

		elements = append(elements, LocalElement{Element: el, Synced: synced})
	}

	return elements, rows.Err()
}

func (s *SQLiteStorage) MarkSynced(id uuid.UUID) error {
	res, err := s.db.Exec("UPDATE elements SET synced = 1 WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("ошибка обновления статуса: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrLocalNotFound
	}

	return nil
}

func (s *SQLiteStorage) DeleteElement(id uuid.UUID) error {
	_, err := s.db.Exec("DELETE FROM elements WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("ошибка удаления элемента: %w", err)
	}

	return nil
}

func (s *SQLiteStorage) CountElements() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM elements").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчета элементов: %w", err)
	}

	return count, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
