// Package terminal 实现交互式终端的核心逻辑：命令注册表、会话记录（transcript）
// 以及把一行输入转换为记录变更的分发器。
//
// 所有状态都放在显式的 State 值里，通过 Reduce(state, event) 迁移，
// 渲染、滚动、打开链接等副作用以 Effect 的形式交给宿主（cli 包）执行，
// 因此这里不依赖任何终端或 UI 运行时。
package terminal
