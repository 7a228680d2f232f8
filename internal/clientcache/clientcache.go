// Package clientcache persists the header metadata attached to generated
// documents in an append-only JSON log shared by all document types.
//
// The log autofills forms for returning customers and numbers new documents.
// Records are never mutated or deleted once written; duplicates are rejected
// at append time on the (customer, project, document number) key. The
// read-modify-write cycle assumes a single user and a single process.
package clientcache

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// HeaderRecord is the non-tabular metadata attached to one generated
// document. The JSON keys double as template placeholder names, so they are
// part of the on-disk and template contract.
type HeaderRecord struct {
	Customer   string `json:"Customer"`
	Project    string `json:"Project_Name"`
	Address    string `json:"Address"`
	Phone      string `json:"Phone_Num"`
	Incharge   string `json:"Incharge"`
	ContactNum string `json:"Contact_Num"`
	CustomerPO string `json:"Customer_PO"`
	Quotation  string `json:"Quotation"`
	Subject    string `json:"Subject"`
	Date       string `json:"Date"`
	DocumentNo string `json:"Delivery_No"`
}

// Placeholders maps the record onto template token names.
func (r HeaderRecord) Placeholders() map[string]string {
	return map[string]string{
		"Customer":     r.Customer,
		"Project_Name": r.Project,
		"Address":      r.Address,
		"Phone_Num":    r.Phone,
		"Incharge":     r.Incharge,
		"Contact_Num":  r.ContactNum,
		"Customer_PO":  r.CustomerPO,
		"Quotation":    r.Quotation,
		"Subject":      r.Subject,
		"Date":         r.Date,
		"Delivery_No":  r.DocumentNo,
	}
}

// Store reads and appends the header record log at a fixed path.
type Store struct {
	path string
}

// NewStore returns a store over the JSON log at path. The file need not
// exist yet.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns all records in append order. A missing file, or file content
// that is not a JSON array, yields an empty list.
func (s *Store) Load() []HeaderRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("clientcache: cannot read %s: %v", s.path, err)
		}
		return nil
	}

	var records []HeaderRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("clientcache: unexpected format in %s, treating as empty: %v", s.path, err)
		return nil
	}
	return records
}

// AppendIfNew appends record unless an entry with the same customer, project
// and document number already exists. It reports whether the record was
// written. The whole file is rewritten on append.
func (s *Store) AppendIfNew(record HeaderRecord) (bool, error) {
	records := s.Load()
	for _, existing := range records {
		if existing.Customer == record.Customer &&
			existing.Project == record.Project &&
			existing.DocumentNo == record.DocumentNo {
			return false, nil
		}
	}

	records = append(records, record)
	if err := s.write(records); err != nil {
		return false, err
	}
	return true, nil
}

// FindByCustomer returns all records for the named customer in append order.
func (s *Store) FindByCustomer(name string) []HeaderRecord {
	var matches []HeaderRecord
	for _, r := range s.Load() {
		if r.Customer == name {
			matches = append(matches, r)
		}
	}
	return matches
}

// UniqueCustomers returns the distinct customer names in the log, sorted.
func (s *Store) UniqueCustomers() []string {
	seen := make(map[string]bool)
	var customers []string
	for _, r := range s.Load() {
		if r.Customer == "" || seen[r.Customer] {
			continue
		}
		seen[r.Customer] = true
		customers = append(customers, r.Customer)
	}
	sort.Strings(customers)
	return customers
}

// NextDocumentNumber derives the next document number for prefix, formatted
// as {PREFIX}{seq:03d}-{MM}-{YY}. The sequence continues from the digits in
// the last record's number; if those cannot be parsed the record count plus
// one is used, and an empty log starts at 1.
func (s *Store) NextDocumentNumber(prefix string, now time.Time) string {
	records := s.Load()

	seq := 1
	if len(records) > 0 {
		last := records[len(records)-1].DocumentNo
		if n, ok := parseSequence(last, prefix); ok {
			seq = n + 1
		} else {
			seq = len(records) + 1
		}
	}
	return fmt.Sprintf("%s%03d-%s", prefix, seq, now.Format("01-06"))
}

// parseSequence extracts the zero-padded sequence following prefix in a
// document number such as "DN003-05-25".
func parseSequence(number, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(number, prefix)
	if !ok {
		return 0, false
	}

	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	var n int
	if _, err := fmt.Sscanf(rest[:end], "%d", &n); err != nil {
		return 0, false
	}
	return n, true
}

func (s *Store) write(records []HeaderRecord) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write client log: %w", err)
	}
	return nil
}
