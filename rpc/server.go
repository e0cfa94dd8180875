package rpc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/sslteam/stp/geom"
	"github.com/sslteam/stp/pass"
	"github.com/sslteam/stp/sim"
	"github.com/sslteam/stp/stp"
)

// Server answers Strategy RPCs. Every request runs against its own
// scenario, so a Server is safe for concurrent use.
type Server struct {
	Config stp.Config

	// Recorders, if set, returns the recorder for a simulated game. Each
	// game is filed under its own run name.
	Recorders func(run string) stp.Recorder
	Debug     int

	runs atomic.Int64
}

func number(req *structpb.Struct, key string, def float64) float64 {
	v, ok := req.GetFields()[key]
	if !ok {
		return def
	}
	if _, ok := v.GetKind().(*structpb.Value_NumberValue); !ok {
		return def
	}
	return v.GetNumberValue()
}

func boolean(req *structpb.Struct, key string) bool {
	return req.GetFields()[key].GetBoolValue()
}

func passFields(p pass.WithRating) map[string]interface{} {
	return map[string]interface{}{
		"passer_x":   p.Pass.PasserPoint().X,
		"passer_y":   p.Pass.PasserPoint().Y,
		"receiver_x": p.Pass.ReceiverPoint().X,
		"receiver_y": p.Pass.ReceiverPoint().Y,
		"speed":      p.Pass.Speed(),
		"start":      p.Pass.StartTime().Seconds(),
		"rating":     p.Rating,
	}
}

// Simulate plays one corner kick. Request fields: seed, pos_y,
// max_ticks. The response carries the outcome, the number of ticks, the
// game time the play ended at, the committed pass, if any, and the run
// the game was recorded under.
func (s *Server) Simulate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	cfg := sim.GameConfig{
		STP:      s.Config,
		PosY:     boolean(req, "pos_y"),
		Seed:     int64(number(req, "seed", 1)),
		MaxTicks: int(number(req, "max_ticks", 0)),
	}
	var (
		run string
		rec stp.Recorder
	)
	if s.Recorders != nil {
		run = fmt.Sprintf("serve-%d", s.runs.Add(1))
		rec = s.Recorders(run)
	}
	start := time.Now()
	res, err := sim.Game(ctx, cfg, rec, nil)
	if s.Debug > 0 {
		log.Printf("[rpc] simulate run=%q seed=%d pos_y=%v ticks=%d outcome=%q took=%s err=%v",
			run, cfg.Seed, cfg.PosY, res.Ticks, res.Outcome, time.Since(start), err)
	}
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, status.FromContextError(err).Err()
	case errors.Is(err, sim.ErrTickLimit):
	case err != nil:
		return nil, status.Errorf(codes.InvalidArgument, "simulate: %v", err)
	}

	fields := map[string]interface{}{
		"outcome": string(res.Outcome),
		"ticks":   float64(res.Ticks),
		"ended":   res.Ended.Seconds(),
	}
	if res.HasPass {
		fields["pass"] = passFields(res.Pass)
	}
	if run != "" {
		fields["run"] = run
	}
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode: %v", err)
	}
	return out, nil
}

// RatePass rates a pass from the ball in the corner kick scenario built
// from seed and pos_y. Request fields: receiver_x, receiver_y, speed,
// and optionally delay in seconds and type ("one_touch_shot" or
// "receive_and_dribble").
func (s *Server) RatePass(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fs := req.GetFields()
	for _, k := range []string{"receiver_x", "receiver_y", "speed"} {
		if _, ok := fs[k]; !ok {
			return nil, status.Errorf(codes.InvalidArgument, "missing field %q", k)
		}
	}
	typ := pass.OneTouchShot
	switch t := fs["type"].GetStringValue(); t {
	case "", pass.OneTouchShot.String():
	case pass.ReceiveAndDribble.String():
		typ = pass.ReceiveAndDribble
	default:
		return nil, status.Errorf(codes.InvalidArgument, "unknown pass type %q", t)
	}

	w := sim.CornerKick(boolean(req, "pos_y"), int64(number(req, "seed", 1)))
	delay := time.Duration(number(req, "delay", 0) * float64(time.Second))
	p := pass.New(
		w.Ball.Position,
		geom.Pt(number(req, "receiver_x", 0), number(req, "receiver_y", 0)),
		number(req, "speed", 0),
		w.Timestamp.Add(delay),
	)
	pc := s.Config.Play.Pass
	if pc.MaxSpeed <= 0 {
		pc = pass.DefaultConfig()
	}
	rating := pass.Rate(&w, p, pass.Params{
		Type:     typ,
		MinSpeed: pc.MinSpeed,
		MaxSpeed: pc.MaxSpeed,
	})
	out, err := structpb.NewStruct(map[string]interface{}{
		"rating": rating,
		"pass":   passFields(pass.WithRating{Pass: p, Rating: rating}),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode: %v", err)
	}
	return out, nil
}
