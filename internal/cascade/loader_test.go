package cascade

import "testing"

// fixtureXML is a small, well-formed 20x20 cascade: stage 0 has one
// weak classifier over a 2-rect feature, stage 1 has two weak
// classifiers each over a 2-rect feature.
const fixtureXML = `<?xml version="1.0"?>
<opencv_storage>
  <cascade>
    <width>20</width>
    <height>20</height>
    <stages>
      <_>
        <maxWeakCount>1</maxWeakCount>
        <stageThreshold>-1.5</stageThreshold>
        <weakClassifiers>
          <_>
            <internalNodes>0 -1 0 -0.03</internalNodes>
            <leafValues>-0.7 0.8</leafValues>
          </_>
        </weakClassifiers>
      </_>
      <_>
        <maxWeakCount>2</maxWeakCount>
        <stageThreshold>-2.1</stageThreshold>
        <weakClassifiers>
          <_>
            <internalNodes>0 -1 1 0.01</internalNodes>
            <leafValues>-0.5 0.4</leafValues>
          </_>
          <_>
            <internalNodes>1 -1 0 0.02</internalNodes>
            <leafValues>-0.2 0.6</leafValues>
          </_>
        </weakClassifiers>
      </_>
    </stages>
    <features>
      <_>
        <rects>
          <_>0 0 4 2 -1.</_>
          <_>0 1 4 1 2.</_>
        </rects>
        <tilted>0</tilted>
      </_>
      <_>
        <rects>
          <_>2 2 6 3 -1.</_>
          <_>2 3 6 1 3.</_>
        </rects>
        <tilted>0</tilted>
      </_>
    </features>
  </cascade>
</opencv_storage>`

// TestLoad_S6 exercises spec.md §8 S6: the first two elements are the
// window size and the array length matches the §3 layout's counting
// formula.
func TestLoad_S6(t *testing.T) {
	c, err := Load([]byte(fixtureXML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if c.WindowW() != 20 || c.WindowH() != 20 {
		t.Fatalf("window = %dx%d, want 20x20", c.WindowW(), c.WindowH())
	}

	// stage0: 2 + 1*(2 + 5*2 + 3) = 2 + 15 = 17
	// stage1: 2 + 2*(2 + 5*2 + 3) = 2 + 30 = 32
	// total:  2 + 17 + 32 = 51
	want := 51
	if got := len(c.Data()); got != want {
		t.Errorf("len(Data()) = %d, want %d", got, want)
	}
}

func TestLoad_DecodesStages(t *testing.T) {
	c, err := Load([]byte(fixtureXML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	stages := c.Stages()
	if len(stages) != 2 {
		t.Fatalf("len(stages) = %d, want 2", len(stages))
	}
	if len(stages[0].Weaks) != 1 || len(stages[1].Weaks) != 2 {
		t.Fatalf("unexpected weak counts: %d, %d", len(stages[0].Weaks), len(stages[1].Weaks))
	}
	w := stages[0].Weaks[0]
	if len(w.Rects) != 2 {
		t.Fatalf("len(Rects) = %d, want 2", len(w.Rects))
	}
	if w.Rects[0].X != 0 || w.Rects[0].Y != 0 || w.Rects[0].W != 4 || w.Rects[0].H != 2 || w.Rects[0].Weight != -1 {
		t.Errorf("unexpected rect: %+v", w.Rects[0])
	}
	if w.NodeThreshold != -0.03 || w.LeafLeft != -0.7 || w.LeafRight != 0.8 {
		t.Errorf("unexpected weak fields: %+v", w)
	}
}

func TestLoad_MalformedXML(t *testing.T) {
	if _, err := Load([]byte("<not-xml")); err == nil {
		t.Fatal("expected an error for malformed XML")
	}
}

func TestLoad_NonNumericToken(t *testing.T) {
	bad := `<opencv_storage><cascade><width>20</width><height>20</height>
	<stages><_><maxWeakCount>1</maxWeakCount><stageThreshold>0</stageThreshold>
	<weakClassifiers><_><internalNodes>0 -1 0 oops</internalNodes><leafValues>-1 1</leafValues></_></weakClassifiers></_></stages>
	<features><_><rects><_>0 0 1 1 1</_></rects><tilted>0</tilted></_></features>
	</cascade></opencv_storage>`
	if _, err := Load([]byte(bad)); err == nil {
		t.Fatal("expected an error for a non-numeric token")
	}
}
