package players

import "testing"

func TestStore_Add(t *testing.T) {
	s := NewStore()
	p := s.Add("p1", "Alice")

	if p.ID != "p1" || p.Name != "Alice" {
		t.Errorf("player = %+v, want ID p1, Name Alice", p)
	}
	if p.Color == "" {
		t.Error("player Color should not be empty")
	}
}

func TestStore_Add_ExistingKeepsBest(t *testing.T) {
	s := NewStore()
	s.Add("p1", "Alice")
	s.RecordSession("p1", 700)

	p := s.Add("p1", "Alicia")

	if p.Name != "Alicia" {
		t.Errorf("Name = %q, want %q", p.Name, "Alicia")
	}
	if p.BestScore != 700 {
		t.Errorf("BestScore = %d, want 700 (re-adding must not reset it)", p.BestScore)
	}
}

func TestStore_Get_Unknown(t *testing.T) {
	s := NewStore()
	if p := s.Get("nope"); p != nil {
		t.Errorf("Get(unknown) = %+v, want nil", p)
	}
}

func TestStore_GetList(t *testing.T) {
	s := NewStore()
	s.Add("p1", "Alice")
	s.Add("p2", "Bob")

	if got := len(s.GetList()); got != 2 {
		t.Errorf("GetList() len = %d, want 2", got)
	}
}

func TestStore_RecordSession(t *testing.T) {
	s := NewStore()
	s.Add("p1", "Alice")

	p := s.RecordSession("p1", 500)
	if p.BestScore != 500 || p.Sessions != 1 {
		t.Errorf("after first session: %+v, want BestScore 500, Sessions 1", p)
	}

	p = s.RecordSession("p1", 300)
	if p.BestScore != 500 {
		t.Errorf("BestScore = %d, want 500 (lower score must not overwrite)", p.BestScore)
	}
	if p.Sessions != 2 {
		t.Errorf("Sessions = %d, want 2", p.Sessions)
	}
}

func TestStore_RecordSession_Unknown(t *testing.T) {
	s := NewStore()
	if p := s.RecordSession("nope", 100); p != nil {
		t.Errorf("RecordSession(unknown) = %+v, want nil", p)
	}
}

func TestStore_ValidateSession(t *testing.T) {
	s := NewStore()
	s.Add("p1", "Alice")

	if !s.ValidateSession("p1") {
		t.Error("ValidateSession(p1) = false, want true")
	}
	if s.ValidateSession("p2") {
		t.Error("ValidateSession(p2) = true, want false")
	}
}
