package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable/poker/action"
)

// ErrFrameSize is returned when a binary frame has the wrong length
var ErrFrameSize = errors.New("invalid frame size")

// ErrValueRange is returned when a value does not fit in its 32-bit frame field
var ErrValueRange = errors.New("value out of range for binary frame")

// int32Writer narrows ints into frame fields, remembering the first one that does not fit
type int32Writer struct {
	err error
}

func (w *int32Writer) put(field string, v int) int32 {
	if v < math.MinInt32 || v > math.MaxInt32 {
		if w.err == nil {
			w.err = fmt.Errorf("%w: %s is %d", ErrValueRange, field, v)
		}

		return 0
	}

	return int32(v)
}

// clientFrame is the fixed binary layout of a ClientAction
type clientFrame struct {
	Type  uint8
	_     [3]byte
	Param int32
}

type infoFrame struct {
	PotSize        int32
	Dealer         int32
	PlayerTurn     int32
	BetSize        int32
	PlayerStacks   [MaxPlayers]int32
	PlayerBets     [MaxPlayers]int32
	PlayerCards    [2]deck.Card
	CommunityCards [5]deck.Card
	PlayerStatus   [MaxPlayers]Status
}

type endFrame struct {
	PlayerCards    [MaxPlayers][2]deck.Card
	CommunityCards [5]deck.Card
	PlayerStacks   [MaxPlayers]int32
	PotSize        int32
	Dealer         int32
	Winner         int32
	// WinnerMask has bit i set when seat i shares the pot
	WinnerMask   uint8
	PlayerStatus [MaxPlayers]Status
}

// ClientFrameSize is the size of a binary client frame
var ClientFrameSize = binary.Size(clientFrame{})

// ServerFrameSize is the size of a binary server frame: the type byte
// followed by the largest payload, zero padded
var ServerFrameSize = 1 + max(binary.Size(infoFrame{}), binary.Size(endFrame{}))

// MarshalBinary encodes the action as a fixed-size little-endian frame
func (c ClientAction) MarshalBinary() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, ClientFrameSize))
	var w int32Writer
	frame := clientFrame{Type: uint8(c.Type), Param: w.put("amount", c.Amount())}
	if w.err != nil {
		return nil, w.err
	}

	if err := binary.Write(buf, binary.LittleEndian, frame); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a fixed-size client frame
func (c *ClientAction) UnmarshalBinary(data []byte) error {
	if len(data) != ClientFrameSize {
		return fmt.Errorf("%w: client frame is %d bytes, got %d", ErrFrameSize, ClientFrameSize, len(data))
	}

	var frame clientFrame
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &frame); err != nil {
		return err
	}

	c.Type = action.Action(frame.Type)
	c.Params = []int{int(frame.Param)}
	return nil
}

// MarshalBinary encodes the message as a fixed-size little-endian frame
func (m ServerMessage) MarshalBinary() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, ServerFrameSize))
	buf.WriteByte(byte(m.Type))

	var payload interface{}
	var err error
	switch {
	case m.Type == Info && m.Info != nil:
		payload, err = toInfoFrame(m.Info)
	case m.Type == End && m.End != nil:
		payload, err = toEndFrame(m.End)
	case m.Type == Info || m.Type == End:
		return nil, fmt.Errorf("%s message without payload", m.Type)
	}

	if err != nil {
		return nil, err
	}

	if payload != nil {
		if err := binary.Write(buf, binary.LittleEndian, payload); err != nil {
			return nil, err
		}
	}

	data := buf.Bytes()
	return append(data, make([]byte, ServerFrameSize-len(data))...), nil
}

// UnmarshalBinary decodes a fixed-size server frame
func (m *ServerMessage) UnmarshalBinary(data []byte) error {
	if len(data) != ServerFrameSize {
		return fmt.Errorf("%w: server frame is %d bytes, got %d", ErrFrameSize, ServerFrameSize, len(data))
	}

	*m = ServerMessage{Type: MessageType(data[0])}
	r := bytes.NewReader(data[1:])

	switch m.Type {
	case Ack, Nack, Halt:
	case Info:
		var frame infoFrame
		if err := binary.Read(r, binary.LittleEndian, &frame); err != nil {
			return err
		}

		m.Info = frame.message()
	case End:
		var frame endFrame
		if err := binary.Read(r, binary.LittleEndian, &frame); err != nil {
			return err
		}

		m.End = frame.message()
	default:
		return fmt.Errorf("unknown message type: %d", data[0])
	}

	return nil
}

func toInfoFrame(info *InfoMessage) (infoFrame, error) {
	var w int32Writer
	frame := infoFrame{
		PotSize:        w.put("potSize", info.PotSize),
		Dealer:         w.put("dealer", info.Dealer),
		PlayerTurn:     w.put("playerTurn", info.PlayerTurn),
		BetSize:        w.put("betSize", info.BetSize),
		PlayerCards:    info.PlayerCards,
		CommunityCards: info.CommunityCards,
		PlayerStatus:   info.PlayerStatus,
	}

	for i := 0; i < MaxPlayers; i++ {
		frame.PlayerStacks[i] = w.put("playerStacks", info.PlayerStacks[i])
		frame.PlayerBets[i] = w.put("playerBets", info.PlayerBets[i])
	}

	return frame, w.err
}

func (f infoFrame) message() *InfoMessage {
	info := &InfoMessage{
		PotSize:        int(f.PotSize),
		Dealer:         int(f.Dealer),
		PlayerTurn:     int(f.PlayerTurn),
		BetSize:        int(f.BetSize),
		PlayerCards:    f.PlayerCards,
		CommunityCards: f.CommunityCards,
		PlayerStatus:   f.PlayerStatus,
	}

	for i := 0; i < MaxPlayers; i++ {
		info.PlayerStacks[i] = int(f.PlayerStacks[i])
		info.PlayerBets[i] = int(f.PlayerBets[i])
	}

	return info
}

func toEndFrame(end *EndMessage) (endFrame, error) {
	var w int32Writer
	frame := endFrame{
		PlayerCards:    end.PlayerCards,
		CommunityCards: end.CommunityCards,
		PotSize:        w.put("potSize", end.PotSize),
		Dealer:         w.put("dealer", end.Dealer),
		Winner:         w.put("winner", end.Winner),
		PlayerStatus:   end.PlayerStatus,
	}

	for i := 0; i < MaxPlayers; i++ {
		frame.PlayerStacks[i] = w.put("playerStacks", end.PlayerStacks[i])
	}

	for _, id := range end.Winners {
		if id >= 0 && id < MaxPlayers {
			frame.WinnerMask |= 1 << uint(id)
		}
	}

	return frame, w.err
}

// message lists the winners clockwise from the dealer's left
func (f endFrame) message() *EndMessage {
	end := &EndMessage{
		PlayerCards:    f.PlayerCards,
		CommunityCards: f.CommunityCards,
		PotSize:        int(f.PotSize),
		Dealer:         int(f.Dealer),
		Winner:         int(f.Winner),
		Winners:        []int{},
		PlayerStatus:   f.PlayerStatus,
	}

	for i := 0; i < MaxPlayers; i++ {
		end.PlayerStacks[i] = int(f.PlayerStacks[i])
	}

	for i := 1; i <= MaxPlayers; i++ {
		id := (end.Dealer + i) % MaxPlayers
		if f.WinnerMask&(1<<uint(id)) != 0 {
			end.Winners = append(end.Winners, id)
		}
	}

	return end
}
