package breakout

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/fsm"
	"github.com/vovakirdan/tui-breakout/internal/input"
	"github.com/vovakirdan/tui-breakout/internal/sched"
)

type recordedScore struct {
	pack, outcome string
	result        Result
}

type testGame struct {
	ctx     *Context
	cues    *cueLog
	machine *fsm.Machine
	scores  []recordedScore
}

func newTestGame(levels []Level) *testGame {
	g := &testGame{}
	g.ctx, g.cues = testContext(levels)
	g.ctx.Pack = "test"
	g.ctx.Scores = ScoreRecorderFunc(func(pack, outcome string, r Result) error {
		g.scores = append(g.scores, recordedScore{pack, outcome, r})
		return nil
	})
	g.machine = NewMachine(g.ctx, sched.New(g.ctx.Logger))
	return g
}

func (g *testGame) start(t *testing.T) *Play {
	t.Helper()
	if err := g.machine.Start(StatePlay, nil); err != nil {
		t.Fatalf("Start(play) error = %v", err)
	}
	p, ok := g.machine.Active().(*Play)
	if !ok {
		t.Fatalf("active state = %T, expected *Play", g.machine.Active())
	}
	return p
}

// launch runs the countdown until a ball is in play.
func (g *testGame) launch(t *testing.T, p *Play) {
	t.Helper()
	for range g.ctx.Config.Gameplay.Countdown {
		g.machine.Tick(g.ctx.Config.Gameplay.CountdownStep())
	}
	if len(p.balls) == 0 {
		t.Fatal("no ball launched after the countdown")
	}
}

func (g *testGame) activeName() string {
	if s := g.machine.Active(); s != nil {
		return s.Name()
	}
	return ""
}

// dropBall places b just above the bottom edge, heading down.
func dropBall(b *Ball) {
	b.Transform.X = 100
	b.Transform.Y = 595
	b.Angle = math.Pi / 2
}

func threeLevels() []Level {
	return []Level{
		gridLevel("a", 1, [2]int{5, 4}),
		gridLevel("b", 1, [2]int{0, 0}),
		gridLevel("c", 1, [2]int{0, 8}),
	}
}

func TestCountdownLaunchesBall(t *testing.T) {
	g := newTestGame(threeLevels())
	p := g.start(t)

	if p.Countdown() != 3 || len(p.balls) != 0 {
		t.Fatalf("Countdown() = %d balls = %d, expected 3 and none", p.Countdown(), len(p.balls))
	}
	g.machine.Tick(999 * time.Millisecond)
	if p.Countdown() != 3 {
		t.Fatalf("Countdown() = %d before the first second, expected 3", p.Countdown())
	}
	g.machine.Tick(time.Millisecond)
	if p.Countdown() != 2 {
		t.Fatalf("Countdown() = %d, expected 2", p.Countdown())
	}
	g.machine.Tick(time.Second)
	g.machine.Tick(time.Second)

	if p.Countdown() != 0 || len(p.balls) != 1 {
		t.Fatalf("Countdown() = %d balls = %d, expected 0 and 1", p.Countdown(), len(p.balls))
	}
	b := p.balls[0]
	if b.Angle < launchAngleMin || b.Angle > launchAngleMax {
		t.Errorf("launch angle %v outside [%v, %v]", b.Angle, launchAngleMin, launchAngleMax)
	}
	wantY := p.paddle.Bounds().Y - g.ctx.Config.Ball.Radius - 1
	if b.Transform.X != p.paddle.Transform.X || b.Transform.Y != wantY {
		t.Errorf("ball at (%v, %v), expected (%v, %v) above the paddle centre", b.Transform.X, b.Transform.Y, p.paddle.Transform.X, wantY)
	}
	if b.Speed != 0.3 {
		t.Errorf("Speed = %v, expected 0.3", b.Speed)
	}
	if g.cues.count(audio.CueCountdown) != 3 || g.cues.count(audio.CueLaunch) != 1 {
		t.Errorf("cues = %v, expected three countdown and one launch", g.cues.cues)
	}
	// Drag, ball and pickup steps remain; the countdown timer is gone.
	if n := g.machine.Scheduler().Len(); n != 3 {
		t.Errorf("scheduler has %d entries, expected 3", n)
	}
}

func TestZeroCountdownLaunchesImmediately(t *testing.T) {
	g := newTestGame(threeLevels())
	g.ctx.Config.Gameplay.Countdown = 0
	p := g.start(t)
	if len(p.balls) != 1 {
		t.Errorf("balls = %d, expected an immediate launch", len(p.balls))
	}
}

func TestBallLossWithLivesLeftRestartsCountdown(t *testing.T) {
	g := newTestGame(threeLevels())
	g.ctx.Config.Gameplay.Lives = 2
	p := g.start(t)
	g.launch(t, p)

	dropBall(p.balls[0])
	g.machine.Tick(10 * time.Millisecond)

	if g.activeName() != StatePlay {
		t.Fatalf("active state = %q, expected play", g.activeName())
	}
	if p.Session().Lives != 1 {
		t.Errorf("Lives = %d, expected 1", p.Session().Lives)
	}
	if p.Countdown() != 3 || len(p.balls) != 0 {
		t.Errorf("Countdown() = %d balls = %d, expected a fresh countdown", p.Countdown(), len(p.balls))
	}

	g.launch(t, p)
	if len(p.balls) != 1 {
		t.Errorf("balls = %d after the second countdown, expected 1", len(p.balls))
	}
}

func TestLastBallLostEndsGame(t *testing.T) {
	g := newTestGame(threeLevels())
	g.ctx.Config.Gameplay.Lives = 1
	p := g.start(t)
	g.launch(t, p)
	p.Session().AddScore(1234)

	dropBall(p.balls[0])
	g.machine.Tick(10 * time.Millisecond)

	end, ok := g.machine.Active().(*EndScreen)
	if !ok || end.Name() != StateGameOver {
		t.Fatalf("active state = %q, expected gameover", g.activeName())
	}
	if want := (Result{Score: 1234, Level: 1}); end.Result() != want {
		t.Errorf("Result() = %+v, expected %+v", end.Result(), want)
	}
	if len(g.scores) != 1 || g.scores[0] != (recordedScore{"test", OutcomeGameOver, Result{1234, 1}}) {
		t.Errorf("recorded scores = %+v", g.scores)
	}
	if g.cues.count(audio.CueGameOver) != 1 {
		t.Error("game over cue should play once")
	}
	// Only the arming timer of the end screen is left.
	if n := g.machine.Scheduler().Len(); n != 1 {
		t.Errorf("scheduler has %d entries, expected 1", n)
	}
}

func TestEndScreenIgnoresInputUntilArmed(t *testing.T) {
	g := newTestGame(threeLevels())
	if err := g.machine.Start(StateGameOver, Result{Score: 10, Level: 2}); err != nil {
		t.Fatal(err)
	}
	end := g.machine.Active().(*EndScreen)

	g.machine.Dispatch(input.KeyDown{Key: input.KeyLeft})
	g.machine.Tick(499 * time.Millisecond)
	g.machine.Dispatch(input.Click{})
	if g.activeName() != StateGameOver || end.Armed() {
		t.Fatalf("end screen left early: state %q armed=%v", g.activeName(), end.Armed())
	}

	g.machine.Tick(time.Millisecond)
	if !end.Armed() {
		t.Fatal("end screen should be armed after the delay")
	}
	g.machine.Dispatch(input.MouseMove{X: 10})
	if g.activeName() != StateGameOver {
		t.Fatal("mouse movement must not leave the end screen")
	}
	g.machine.Dispatch(input.Click{})
	if g.activeName() != StateTitle {
		t.Errorf("active state = %q, expected title", g.activeName())
	}
}

func TestTitleStartsPlayOnTrigger(t *testing.T) {
	g := newTestGame(threeLevels())
	if err := g.machine.Start(StateTitle, nil); err != nil {
		t.Fatal(err)
	}
	g.machine.Dispatch(input.MouseMove{X: 100})
	g.machine.Dispatch(input.KeyUp{Key: input.KeyLeft})
	if g.activeName() != StateTitle {
		t.Fatalf("active state = %q, expected title", g.activeName())
	}
	g.machine.Dispatch(input.KeyDown{Key: input.KeyOther})
	if g.activeName() != StatePlay {
		t.Errorf("active state = %q, expected play", g.activeName())
	}
}

func TestBallClearsLevelAndAdvances(t *testing.T) {
	g := newTestGame(threeLevels())
	p := g.start(t)
	g.launch(t, p)

	// The only brick of level a sits at row 5, col 4: x 220..260, y 160..180.
	b := p.balls[0]
	b.Transform.X, b.Transform.Y = 240, 190
	b.Angle = 1.5 * math.Pi
	g.machine.Tick(16 * time.Millisecond)

	if g.activeName() != StatePlay {
		t.Fatalf("active state = %q, expected play after one of three levels", g.activeName())
	}
	s := p.Session()
	if s.LevelIndex != 1 || s.Score != 100 {
		t.Errorf("LevelIndex = %d Score = %d, expected 1 and 100", s.LevelIndex, s.Score)
	}
	if !b.Destroyed() || len(p.balls) != 0 {
		t.Error("balls should be cleared between levels")
	}
	if p.Countdown() != 3 {
		t.Errorf("Countdown() = %d, expected a fresh countdown", p.Countdown())
	}
	if p.levels.Remaining() != 1 {
		t.Errorf("Remaining() = %d, expected the next level spawned", p.levels.Remaining())
	}
	if s.Lives != 3 {
		t.Errorf("Lives = %d, clearing a level must not cost a life", s.Lives)
	}
	if g.cues.count(audio.CueLevelClear) != 1 {
		t.Error("level clear cue should play once")
	}
}

func TestClearingLastLevelWins(t *testing.T) {
	g := newTestGame(threeLevels())
	p := g.start(t)

	for i := range 3 {
		if p.Session().LevelIndex != i {
			t.Fatalf("LevelIndex = %d, expected %d", p.Session().LevelIndex, i)
		}
		p.levels.Active()[0].Hit()
	}
	if name, ok := g.machine.Pending(); !ok || name != StateWin {
		t.Fatalf("Pending() = %q, %v, expected win", name, ok)
	}
	g.machine.Tick(0)

	end, ok := g.machine.Active().(*EndScreen)
	if !ok || end.Name() != StateWin {
		t.Fatalf("active state = %q, expected win", g.activeName())
	}
	if want := (Result{Score: 300, Level: 3}); end.Result() != want {
		t.Errorf("Result() = %+v, expected %+v", end.Result(), want)
	}
	if len(g.scores) != 1 || g.scores[0].outcome != OutcomeWin {
		t.Errorf("recorded scores = %+v", g.scores)
	}
}

func TestPlayEnterFailsWithoutValidLevels(t *testing.T) {
	bad := gridLevel("bad", 1, [2]int{0, 0})
	bad.Cells[1] = 9

	tests := []struct {
		name   string
		levels []Level
		want   error
	}{
		{"no levels", nil, ErrNoLevel},
		{"invalid level", []Level{gridLevel("ok", 1, [2]int{0, 0}), bad}, ErrHitValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(tt.levels)
			err := g.machine.Start(StatePlay, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("Start(play) error = %v, expected %v", err, tt.want)
			}
			if g.machine.Active() != nil {
				t.Error("failed enter must leave no active state")
			}
			if n := g.machine.Scheduler().Len(); n != 0 {
				t.Errorf("scheduler has %d entries after a failed enter", n)
			}
		})
	}
}

func TestRecordScoreFailureIsLogged(t *testing.T) {
	g := newTestGame(threeLevels())
	g.ctx.Scores = ScoreRecorderFunc(func(string, string, Result) error {
		return errors.New("disk full")
	})
	if err := g.machine.Start(StateWin, Result{Score: 1}); err != nil {
		t.Errorf("Start(win) error = %v, a recorder failure must not stop the screen", err)
	}
}

func TestWidenPickup(t *testing.T) {
	g := newTestGame(threeLevels())
	p := g.start(t)

	p.applyPickup(PickupWiden)
	p.applyPickup(PickupWiden)
	if p.paddle.Transform.W != 112 {
		t.Fatalf("paddle width = %v, expected 112", p.paddle.Transform.W)
	}
	g.machine.Tick(9999 * time.Millisecond)
	if p.paddle.Transform.W != 112 {
		t.Fatal("paddle shrank before the widen ran out")
	}
	g.machine.Tick(time.Millisecond)
	if p.paddle.Transform.W != 80 {
		t.Errorf("paddle width = %v, expected 80", p.paddle.Transform.W)
	}
}

func TestMultiballPickup(t *testing.T) {
	g := newTestGame(threeLevels())
	p := g.start(t)
	g.launch(t, p)

	p.applyPickup(PickupMultiball)
	if len(p.balls) != 3 {
		t.Fatalf("balls = %d, expected 3", len(p.balls))
	}
	for _, b := range p.balls {
		if b.Angle != SanitizeAngle(b.Angle) {
			t.Errorf("multiball angle %v is not sanitized", b.Angle)
		}
	}

	// Losing some balls costs no life while another is in play.
	dropBall(p.balls[0])
	dropBall(p.balls[1])
	g.machine.Tick(10 * time.Millisecond)
	if len(p.balls) != 1 || p.Session().Lives != 3 {
		t.Errorf("balls = %d lives = %d, expected 1 and 3", len(p.balls), p.Session().Lives)
	}
}

func TestExtraLifePickup(t *testing.T) {
	g := newTestGame(threeLevels())
	p := g.start(t)
	p.applyPickup(PickupExtraLife)
	if p.Session().Lives != 4 {
		t.Errorf("Lives = %d, expected 4", p.Session().Lives)
	}
}

func TestBrickDropsPickup(t *testing.T) {
	g := newTestGame([]Level{gridLevel("two", 1, [2]int{0, 0}, [2]int{0, 1})})
	g.ctx.Config.Pickups.Chance = 100
	p := g.start(t)

	p.levels.Active()[0].Hit()
	snap := p.Snapshot()
	if len(snap.Pickups) != 1 {
		t.Fatalf("pickups = %d, expected 1", len(snap.Pickups))
	}
	if x, _ := snap.Pickups[0].Bounds.Mid(); x != 80 {
		t.Errorf("pickup x = %v, expected the brick centre 80", x)
	}
}

func TestExitReleasesEverything(t *testing.T) {
	g := newTestGame(threeLevels())
	p := g.start(t)
	g.launch(t, p)
	p.walls[0].Hit()

	g.machine.Request(StateTitle, nil)
	g.machine.Tick(0)

	if n := g.machine.Scheduler().Len(); n != 0 {
		t.Errorf("scheduler has %d entries after leaving play, expected 0", n)
	}
	if len(p.balls) != 0 || p.levels.Remaining() != 0 {
		t.Error("entities should be destroyed on exit")
	}
}

func TestSnapshot(t *testing.T) {
	g := newTestGame(BuiltinLevels())
	p := g.start(t)
	snap := p.Snapshot()

	if snap.Width != 480 || snap.Height != 600 {
		t.Errorf("size = %vx%v, expected 480x600", snap.Width, snap.Height)
	}
	if snap.Lives != 3 || snap.Countdown != 3 || snap.LevelCount != 3 {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.LevelName == "" {
		t.Error("LevelName should be set")
	}
	if len(snap.Walls) != 3 || len(snap.Bricks) != BuiltinLevels()[0].Bricks() {
		t.Errorf("walls = %d bricks = %d", len(snap.Walls), len(snap.Bricks))
	}
}

// scriptedRun plays a game with scripted input and returns one key per tick.
func scriptedRun(seed uint64, ticks int) []string {
	g := newTestGame(BuiltinLevels())
	g.ctx.Seed = seed
	g.ctx.Config.Pickups.Chance = 30
	if err := g.machine.Start(StatePlay, nil); err != nil {
		panic(err)
	}

	keys := []input.Key{input.KeyLeft, input.KeyRight}
	trace := make([]string, 0, ticks)
	for i := range ticks {
		switch i % 90 {
		case 0:
			g.machine.Dispatch(input.KeyDown{Key: keys[(i/90)%2]})
		case 45:
			g.machine.Dispatch(input.KeyUp{Key: keys[(i/90)%2]})
		}
		g.machine.Tick(16 * time.Millisecond)

		key := g.activeName()
		if p, ok := g.machine.Active().(*Play); ok {
			snap := p.Snapshot()
			key = fmt.Sprintf("%s:%x", key, snap.Hash())
		}
		trace = append(trace, key)
	}
	return trace
}

func TestDeterminism(t *testing.T) {
	const ticks = 1500
	a := scriptedRun(42, ticks)
	b := scriptedRun(42, ticks)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs diverged at tick %d: %s vs %s", i, a[i], b[i])
		}
	}

	c := scriptedRun(7, ticks)
	differs := false
	for i := range a {
		if a[i] != c[i] {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("different seeds produced identical runs")
	}
}

func TestEachGameGetsFreshLaunchAngles(t *testing.T) {
	firstAngles := func(games int) []float64 {
		g := newTestGame(BuiltinLevels())
		g.ctx.Seed = 42
		angles := make([]float64, 0, games)
		for range games {
			g.machine.Request(StateTitle, nil)
			g.machine.Tick(0)
			g.machine.Request(StatePlay, nil)
			g.machine.Tick(0)
			p, ok := g.machine.Active().(*Play)
			if !ok {
				t.Fatalf("active state = %q, expected play", g.activeName())
			}
			g.launch(t, p)
			angles = append(angles, p.balls[0].Angle)
		}
		return angles
	}

	a := firstAngles(2)
	if a[0] == a[1] {
		t.Errorf("second game launched at %v, expected a different angle than the first", a[1])
	}
	b := firstAngles(2)
	if a[0] != b[0] || a[1] != b[1] {
		t.Errorf("angles = %v, expected %v for the same seed", b, a)
	}
}
