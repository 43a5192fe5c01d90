package messages

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// mockModel is a minimal tea.Model for testing the Standalone wrapper.
type mockModel struct {
	lastMsg    tea.Msg
	viewString string
}

func (m mockModel) Init() tea.Cmd                           { return nil }
func (m mockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) { m.lastMsg = msg; return m, nil }
func (m mockModel) View() string                            { return m.viewString }

func TestStandalone_BackMsg_Quits(t *testing.T) {
	inner := mockModel{viewString: "inner"}
	s := Standalone(inner)

	_, cmd := s.Update(BackMsg{})

	if cmd == nil {
		t.Fatal("expected non-nil cmd for quit")
	}
	// tea.Quit returns a special quit message.
	msg := cmd()
	if _, ok := msg.(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", msg)
	}
}

func TestStandalone_CtrlC_Quits(t *testing.T) {
	inner := mockModel{viewString: "inner"}
	s := Standalone(inner)

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	if cmd == nil {
		t.Fatal("expected non-nil cmd for quit")
	}
	msg := cmd()
	if _, ok := msg.(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", msg)
	}
}

func TestStandalone_OtherMsg_Delegates(t *testing.T) {
	inner := mockModel{viewString: "inner"}
	s := Standalone(inner)

	type customMsg struct{}
	result, _ := s.Update(customMsg{})

	// The returned model should be a standalone wrapping the updated inner.
	st, ok := result.(standalone)
	if !ok {
		t.Fatalf("expected standalone, got %T", result)
	}
	updated, ok := st.inner.(mockModel)
	if !ok {
		t.Fatalf("expected mockModel inner, got %T", st.inner)
	}
	if updated.lastMsg != (customMsg{}) {
		t.Errorf("expected customMsg passed to inner, got %T", updated.lastMsg)
	}
}

func TestStandalone_View_Delegates(t *testing.T) {
	inner := mockModel{viewString: "hello"}
	s := Standalone(inner)

	if got := s.View(); got != "hello" {
		t.Errorf("expected 'hello', got %q", got)
	}
}

func TestStandalone_Init_Delegates(t *testing.T) {
	inner := mockModel{}
	s := Standalone(inner)

	cmd := s.Init()
	if cmd != nil {
		t.Error("expected nil cmd from mock Init")
	}
}

func TestParseHostMsg(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    HostMsg
		wantErr bool
	}{
		{name: "dark", payload: `{"action":"themeChanged","theme":"dark"}`, want: HostMsg{Action: "themeChanged", Theme: "dark"}},
		{name: "light", payload: `{"action":"themeChanged","theme":"light"}`, want: HostMsg{Action: "themeChanged", Theme: "light"}},
		{name: "unknown action", payload: `{"action":"resize","theme":"dark"}`, wantErr: true},
		{name: "unknown theme", payload: `{"action":"themeChanged","theme":"sepia"}`, wantErr: true},
		{name: "not json", payload: `themeChanged`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHostMsg([]byte(tt.payload))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHostMsg() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHostMsg() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestThemeChanged(t *testing.T) {
	got := ThemeChanged("light")
	if got.Action != ActionThemeChanged || got.Theme != "light" {
		t.Errorf("unexpected host message %+v", got)
	}
}
